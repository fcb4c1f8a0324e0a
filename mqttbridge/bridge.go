// Package mqttbridge republishes engine events onto an MQTT broker, one
// topic per event kind, so external automation (a logging service, a
// dashboard) can subscribe without linking against this module. Grounded
// on the teacher's MQTTPublisher in mqtt_publisher.go, generalized from
// periodic metric snapshots to event-driven publishes and from a
// metrics-shaped payload to one mirroring chatproto.Event.
package mqttbridge

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

// Config configures the broker connection and topic namespace.
type Config struct {
	BrokerURL string
	ClientID  string
	TopicRoot string
	QoS       byte
}

// Bridge is a chatproto.Observer that publishes every engine event to
// <TopicRoot>/<kind>.
type Bridge struct {
	client    mqtt.Client
	topicRoot string
	qos       byte
}

// Connect dials the broker and returns a ready Bridge. If cfg.ClientID is
// empty, a random ID is generated the way the teacher's
// generateClientID does.
func Connect(cfg Config) (*Bridge, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = generateClientID()
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(clientID).
		SetConnectRetry(true).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqttbridge: connect: %w", token.Error())
	}

	root := cfg.TopicRoot
	if root == "" {
		root = "ft8chat"
	}

	return &Bridge{client: client, topicRoot: root, qos: cfg.QoS}, nil
}

// wirePayload is the JSON body published for every event.
type wirePayload struct {
	Time      time.Time `json:"time"`
	Kind      string    `json:"kind"`
	State     string    `json:"state,omitempty"`
	StatusKey string    `json:"status_key,omitempty"`
	Sender    string    `json:"sender,omitempty"`
	Target    string    `json:"target,omitempty"`
	Text      string    `json:"text,omitempty"`
}

// OnEvent implements chatproto.Observer.
func (b *Bridge) OnEvent(e chatproto.Event) {
	kind, payload := b.encode(e)
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("mqttbridge: marshal: %v", err)
		return
	}

	topic := fmt.Sprintf("%s/%s", b.topicRoot, kind)
	token := b.client.Publish(topic, b.qos, false, data)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Printf("mqttbridge: publish to %s: %v", topic, token.Error())
		}
	}()
}

func (b *Bridge) encode(e chatproto.Event) (string, wirePayload) {
	p := wirePayload{Time: time.Now()}
	switch e.Kind {
	case chatproto.EventStateChanged:
		p.State = e.NewState.String()
		return "state", p
	case chatproto.EventStatusMessage:
		p.StatusKey = string(e.StatusKey)
		return "status", p
	case chatproto.EventMessageReceived:
		p.Sender, p.Text = e.RxSenderID, e.RxFullText
		return "message_received", p
	case chatproto.EventMessageSentOk:
		p.Target = e.TargetID
		return "message_sent", p
	case chatproto.EventDirectTxComplete:
		return "direct_tx_complete", p
	default:
		return "event", p
	}
}

// Close disconnects from the broker, waiting up to 250ms to flush.
func (b *Bridge) Close() {
	b.client.Disconnect(250)
}

func generateClientID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return "ft8chat_" + hex.EncodeToString(buf)
}
