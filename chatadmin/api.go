// Package chatadmin serves an HTTP JSON API over the CSV logs chatlog
// writes, with optional gzip export and request-origin enrichment.
// Grounded on the teacher's HandleChatLogs/readChatLogs/parseChatLogFilter
// in chat_logs_api.go, adapted from the teacher's six-column web-chat CSV
// schema to chatlog's four-column (timestamp, direction, peer, text)
// schema, and on its GeoIPService in geoip_service.go for enriching the
// requester's own IP in each response rather than a logged sender IP
// the protocol itself never records.
package chatadmin

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/oschwald/geoip2-golang"
	"github.com/ua-parser/uap-go/uaparser"
	"golang.org/x/net/netutil"
)

// LogEntry is one row read back from a chatlog CSV file.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Direction string    `json:"direction"`
	Peer      string    `json:"peer"`
	Text      string    `json:"text"`
}

// Filter selects which logged rows a query returns.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	Peer      string
	Text      string
	Limit     int
}

// API serves chat log queries over HTTP.
type API struct {
	dataDir    string
	geoip      *geoip2.Reader
	uaParser   *uaparser.Parser
}

// New creates an API reading CSV logs from dataDir. geoipDBPath may be
// empty, in which case requester geolocation is omitted from responses.
func New(dataDir, geoipDBPath string) (*API, error) {
	api := &API{dataDir: dataDir}

	if geoipDBPath != "" {
		db, err := geoip2.Open(geoipDBPath)
		if err != nil {
			return nil, fmt.Errorf("chatadmin: open geoip db: %w", err)
		}
		api.geoip = db
	}

	api.uaParser = uaparser.NewFromSaved()

	return api, nil
}

// LimitListener wraps ln so the admin API never accepts more than max
// concurrent connections, guarding against a burst of log-export requests
// starving the rest of the process.
func LimitListener(ln net.Listener, max int) net.Listener {
	return netutil.LimitListener(ln, max)
}

// HandleLogs serves GET /logs?start=&end=&peer=&text=&limit=&format=
// returning JSON, or gzip-compressed JSON when format=gzip or the client
// sends Accept-Encoding: gzip.
func (a *API) HandleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid filter: %v", err), http.StatusBadRequest)
		return
	}

	logs, err := a.readLogs(filter)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read logs: %v", err), http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"start_date": filter.StartDate.Format("2006-01-02"),
		"end_date":   filter.EndDate.Format("2006-01-02"),
		"count":      len(logs),
		"logs":       logs,
		"requester":  a.describeRequester(r),
	}

	if wantsGzip(r) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/json")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		json.NewEncoder(gz).Encode(response)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// requesterInfo enriches the response with who is asking: geolocation of
// the caller's IP and a parsed User-Agent, following the teacher's
// pattern of using GeoIPService for admin-facing request context rather
// than for any protocol data (the FT8 chat protocol never carries IP
// addresses).
type requesterInfo struct {
	IP          string `json:"ip"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Browser     string `json:"browser,omitempty"`
	OS          string `json:"os,omitempty"`
}

func (a *API) describeRequester(r *http.Request) requesterInfo {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	info := requesterInfo{IP: host}

	if a.geoip != nil {
		if ip := net.ParseIP(host); ip != nil {
			if rec, err := a.geoip.Country(ip); err == nil {
				info.Country = rec.Country.Names["en"]
				info.CountryCode = rec.Country.IsoCode
			}
		}
	}

	if ua := r.Header.Get("User-Agent"); ua != "" && a.uaParser != nil {
		client := a.uaParser.Parse(ua)
		info.Browser = client.UserAgent.Family
		info.OS = client.Os.Family
	}

	return info
}

func wantsGzip(r *http.Request) bool {
	if r.URL.Query().Get("format") == "gzip" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func parseFilter(r *http.Request) (Filter, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	filter := Filter{StartDate: today, EndDate: today, Limit: 1000}

	if s := r.URL.Query().Get("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid start date: %w", err)
		}
		filter.StartDate = t.UTC()
	}
	if s := r.URL.Query().Get("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid end date: %w", err)
		}
		filter.EndDate = t.UTC()
	}
	if filter.StartDate.After(filter.EndDate) {
		return Filter{}, fmt.Errorf("start date must be before or equal to end date")
	}
	if filter.EndDate.Sub(filter.StartDate) > 31*24*time.Hour {
		return Filter{}, fmt.Errorf("date range cannot exceed 31 days")
	}

	filter.Peer = strings.TrimSpace(r.URL.Query().Get("peer"))
	filter.Text = strings.TrimSpace(r.URL.Query().Get("text"))

	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 10000 {
			return Filter{}, fmt.Errorf("invalid limit (must be 1-10000)")
		}
		filter.Limit = n
	}

	return filter, nil
}

func (a *API) readLogs(filter Filter) ([]LogEntry, error) {
	var all []LogEntry

	for day := filter.StartDate; !day.After(filter.EndDate); day = day.Add(24 * time.Hour) {
		path := filepath.Join(a.dataDir, fmt.Sprintf("%04d", day.Year()), fmt.Sprintf("%02d", day.Month()), fmt.Sprintf("%02d", day.Day()), "chat.csv")

		entries, err := readLogFile(path, filter)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		all = append(all, entries...)
		if len(all) >= filter.Limit {
			all = all[:filter.Limit]
			break
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })
	return all, nil
}

func readLogFile(path string, filter Filter) ([]LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != 4 {
		return nil, fmt.Errorf("unexpected header column count: %d", len(header))
	}

	var entries []LogEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) != 4 {
			continue
		}

		ts, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			continue
		}

		entry := LogEntry{Timestamp: ts, Direction: record[1], Peer: record[2], Text: record[3]}
		if !matchesFilter(entry, filter) {
			continue
		}

		entries = append(entries, entry)
		if len(entries) >= filter.Limit {
			break
		}
	}

	return entries, nil
}

func matchesFilter(entry LogEntry, filter Filter) bool {
	if filter.Peer != "" && !strings.Contains(strings.ToLower(entry.Peer), strings.ToLower(filter.Peer)) {
		return false
	}
	if filter.Text != "" && !strings.Contains(strings.ToLower(entry.Text), strings.ToLower(filter.Text)) {
		return false
	}
	return true
}

// Close releases the GeoIP database handle, if one was opened.
func (a *API) Close() error {
	if a.geoip == nil {
		return nil
	}
	return a.geoip.Close()
}
