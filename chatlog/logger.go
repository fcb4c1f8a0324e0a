// Package chatlog writes a durable CSV record of every message the engine
// delivers or sends successfully, rotated by UTC day. It is grounded on
// the teacher's ChatLogger (chat_logger.go), adapted to log protocol
// events instead of web-chat messages.
package chatlog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

// Logger is a chatproto.Observer that appends one CSV row per completed
// message transfer to dataDir/YYYY/MM/DD/chat.csv.
type Logger struct {
	dataDir string
	enabled bool

	fileMu     sync.Mutex
	openFile   *os.File
	csvWriter  *csv.Writer
	currentDay string

	now func() time.Time
}

// New creates a Logger. If enabled is false, New still returns a usable
// Logger whose OnEvent is a no-op, so callers can subscribe it
// unconditionally.
func New(dataDir string, enabled bool) (*Logger, error) {
	if !enabled {
		return &Logger{enabled: false}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("chatlog: create data dir: %w", err)
	}

	return &Logger{
		dataDir: dataDir,
		enabled: true,
		now:     time.Now,
	}, nil
}

// OnEvent implements chatproto.Observer. Only the two events that mark a
// message transfer's conclusion are recorded: a locally sent message
// (MessageSentOk) and a fully reassembled received message
// (MessageReceived).
func (l *Logger) OnEvent(e chatproto.Event) {
	if !l.enabled {
		return
	}

	switch e.Kind {
	case chatproto.EventMessageSentOk:
		l.record("tx", e.TargetID, "")
	case chatproto.EventMessageReceived:
		l.record("rx", e.RxSenderID, e.RxFullText)
	}
}

func (l *Logger) record(direction, peer, text string) {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()

	writer, err := l.writerFor(l.now())
	if err != nil {
		log.Printf("chatlog: %v", err)
		return
	}

	row := []string{time.Now().UTC().Format(time.RFC3339), direction, peer, text}
	if err := writer.Write(row); err != nil {
		log.Printf("chatlog: write row: %v", err)
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("chatlog: flush: %v", err)
	}
}

// writerFor returns the CSV writer for ts's UTC date, rotating to a new
// file when the date has changed since the last write.
func (l *Logger) writerFor(ts time.Time) (*csv.Writer, error) {
	ts = ts.UTC()
	dateStr := ts.Format("2006-01-02")

	if l.currentDay == dateStr {
		return l.csvWriter, nil
	}

	if l.openFile != nil {
		l.csvWriter.Flush()
		l.openFile.Close()
	}

	dirPath := filepath.Join(l.dataDir, fmt.Sprintf("%04d", ts.Year()), fmt.Sprintf("%02d", ts.Month()), fmt.Sprintf("%02d", ts.Day()))
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	filename := filepath.Join(dirPath, "chat.csv")
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	stat, _ := file.Stat()
	needsHeader := stat.Size() == 0

	writer := csv.NewWriter(file)
	l.openFile = file
	l.csvWriter = writer
	l.currentDay = dateStr

	if needsHeader {
		if err := writer.Write([]string{"timestamp", "direction", "peer", "text"}); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		writer.Flush()
	}

	return writer, nil
}

// Close flushes and closes the currently open log file, if any.
func (l *Logger) Close() error {
	if !l.enabled {
		return nil
	}
	l.fileMu.Lock()
	defer l.fileMu.Unlock()

	if l.openFile == nil {
		return nil
	}
	l.csvWriter.Flush()
	return l.openFile.Close()
}
