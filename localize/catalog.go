// Package localize renders a chatproto.MessageKey and its arguments into
// a human-readable string in the operator's chosen language. The engine
// itself never formats language — this mirrors the original
// implementation's use of Qt's tr() for every status string, moved out
// of the state machine and into its own layer built on
// golang.org/x/text/message, the idiomatic Go equivalent.
package localize

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

func init() {
	registerEnglish()
	registerFrench()
}

// Catalog renders message keys in one fixed language.
type Catalog struct {
	printer *message.Printer
}

// New creates a Catalog for tag, e.g. language.English or language.French.
// Unregistered tags fall back to English.
func New(tag language.Tag) *Catalog {
	return &Catalog{printer: message.NewPrinter(tag)}
}

// Render turns a status event's key and arguments into operator-facing
// text. Unknown keys render as their raw string so a missing translation
// is visible rather than silently swallowed.
func (c *Catalog) Render(key chatproto.MessageKey, args ...any) string {
	return c.printer.Sprintf(string(key), args...)
}

func registerEnglish() {
	message.SetString(language.English, string(chatproto.MsgSendingTo), "Sending to %s (%d fragments)")
	message.SetString(language.English, string(chatproto.MsgBroadcastingTo), "Broadcasting to %s (%d fragments)")
	message.SetString(language.English, string(chatproto.MsgTxFragment), "Transmitting fragment %d/%d")
	message.SetString(language.English, string(chatproto.MsgCQFragment), "Sending CQ fragment %d/%d")
	message.SetString(language.English, string(chatproto.MsgEchoSent), "Echo sent")
	message.SetString(language.English, string(chatproto.MsgEchoOK), "Echo confirmed %d/%d")
	message.SetString(language.English, string(chatproto.MsgEchoBad), "Echo mismatch, retry %d/%d")
	message.SetString(language.English, string(chatproto.MsgRetriesExhausted), "Message abandoned: too many retries")
	message.SetString(language.English, string(chatproto.MsgMessageSent), "Message delivered to %s")
	message.SetString(language.English, string(chatproto.MsgBroadcastDone), "Broadcast to %s complete")
	message.SetString(language.English, string(chatproto.MsgTimeoutBroadcast), "Broadcast timed out")
	message.SetString(language.English, string(chatproto.MsgTimeoutSession), "Session timed out")
	message.SetString(language.English, string(chatproto.MsgHalted), "Transmission halted")
	message.SetString(language.English, string(chatproto.MsgReceivedFrom), "Receiving message from %s")
	message.SetString(language.English, string(chatproto.MsgContinuationFrom), "Receiving more from %s")
	message.SetString(language.English, string(chatproto.MsgMessageComplete), "Message from %s complete")
	message.SetString(language.English, string(chatproto.MsgDirectTxReady), "Direct TX ready: %d symbols across %d fragments")
	message.SetString(language.English, string(chatproto.MsgDirectTxProgress), "Direct TX fragment %d/%d, %ds remaining")
	message.SetString(language.English, string(chatproto.MsgDirectTxComplete), "Direct TX to %s complete")
	message.SetString(language.English, string(chatproto.MsgEncoderFailure), "Encoder failure")
}

func registerFrench() {
	message.SetString(language.French, string(chatproto.MsgSendingTo), "Envoi vers %s (%d fragments)")
	message.SetString(language.French, string(chatproto.MsgBroadcastingTo), "Diffusion vers %s (%d fragments)")
	message.SetString(language.French, string(chatproto.MsgTxFragment), "Transmission du fragment %d/%d")
	message.SetString(language.French, string(chatproto.MsgCQFragment), "Envoi du fragment CQ %d/%d")
	message.SetString(language.French, string(chatproto.MsgEchoSent), "Écho envoyé")
	message.SetString(language.French, string(chatproto.MsgEchoOK), "Écho confirmé %d/%d")
	message.SetString(language.French, string(chatproto.MsgEchoBad), "Écho incorrect, tentative %d/%d")
	message.SetString(language.French, string(chatproto.MsgRetriesExhausted), "Message abandonné : trop de tentatives")
	message.SetString(language.French, string(chatproto.MsgMessageSent), "Message remis à %s")
	message.SetString(language.French, string(chatproto.MsgBroadcastDone), "Diffusion vers %s terminée")
	message.SetString(language.French, string(chatproto.MsgTimeoutBroadcast), "Diffusion expirée")
	message.SetString(language.French, string(chatproto.MsgTimeoutSession), "Session expirée")
	message.SetString(language.French, string(chatproto.MsgHalted), "Transmission interrompue")
	message.SetString(language.French, string(chatproto.MsgReceivedFrom), "Réception d'un message de %s")
	message.SetString(language.French, string(chatproto.MsgContinuationFrom), "Réception de la suite depuis %s")
	message.SetString(language.French, string(chatproto.MsgMessageComplete), "Message de %s complet")
	message.SetString(language.French, string(chatproto.MsgDirectTxReady), "TX directe prête : %d symboles sur %d fragments")
	message.SetString(language.French, string(chatproto.MsgDirectTxProgress), "TX directe fragment %d/%d, %ds restantes")
	message.SetString(language.French, string(chatproto.MsgDirectTxComplete), "TX directe vers %s terminée")
	message.SetString(language.French, string(chatproto.MsgEncoderFailure), "Échec de l'encodeur")
}

// Fallback renders a key with no registered translation, used by callers
// that want a guaranteed non-empty string outside of a Catalog.
func Fallback(key chatproto.MessageKey, args ...any) string {
	return fmt.Sprintf("%s %v", key, args)
}
