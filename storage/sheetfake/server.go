// Package sheetfake is an in-process stand-in for the spreadsheet web-app
// endpoint, used by tests across the module.
package sheetfake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// Call is one request received by the fake.
type Call struct {
	Action   string
	Sheet    string
	RowIndex int
	RowData  []string
	Form     map[string]string
}

// Upload is one file received through action=uploadFile.
type Upload struct {
	FileName string
	MimeType string
	FolderID string
	DataURL  string
	FileURL  string
}

type Server struct {
	mu      sync.Mutex
	sheets  map[string][][]interface{}
	calls   []Call
	uploads []Upload
	failure map[string]string
	status  int
	srv     *httptest.Server
}

// New starts a fake endpoint. Stop it with Close.
func New() *Server {
	s := &Server{
		sheets:  map[string][][]interface{}{},
		failure: map[string]string{},
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

// SetSheet replaces the contents of a sheet.
func (s *Server) SetSheet(name string, rows [][]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]interface{}, len(rows))
	for i, r := range rows {
		cp[i] = append([]interface{}(nil), r...)
	}
	s.sheets[name] = cp
}

// Sheet returns a copy of the sheet rows rendered as strings.
func (s *Server) Sheet(name string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.sheets[name]
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = make([]string, len(r))
		for j, c := range r {
			if c != nil {
				out[i][j] = fmt.Sprint(c)
			}
		}
	}
	return out
}

// Cell returns one cell of a 1-based sheet row.
func (s *Server) Cell(name string, rowIndex, col int) string {
	rows := s.Sheet(name)
	if rowIndex < 1 || rowIndex > len(rows) || col >= len(rows[rowIndex-1]) {
		return ""
	}
	return rows[rowIndex-1][col]
}

// FailAction makes every request with the given action answer
// success:false with msg.
func (s *Server) FailAction(action, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure[action] = msg
}

// FailStatus makes every request answer with the given HTTP status.
func (s *Server) FailStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsFor returns the calls of one action.
func (s *Server) CallsFor(action string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != 0 {
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte("fake failure"))
		return
	}

	if r.Method == http.MethodGet {
		sheet := r.URL.Query().Get("sheet")
		action := r.URL.Query().Get("action")
		s.calls = append(s.calls, Call{Action: action, Sheet: sheet})
		if msg, ok := s.failure[action]; ok {
			writeJSON(w, map[string]interface{}{"success": false, "error": msg})
			return
		}
		if action != "getData" {
			writeJSON(w, map[string]interface{}{"success": false, "error": "unknown action"})
			return
		}
		rows, ok := s.sheets[sheet]
		if !ok {
			writeJSON(w, map[string]interface{}{"success": false, "error": "Sheet not found: " + sheet})
			return
		}
		writeJSON(w, map[string]interface{}{"success": true, "data": rows})
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	form := map[string]string{}
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}
	call := Call{Action: form["action"], Sheet: form["sheetName"], Form: form}
	if form["rowIndex"] != "" {
		call.RowIndex, _ = strconv.Atoi(form["rowIndex"])
	}
	if form["rowData"] != "" {
		if err := json.Unmarshal([]byte(form["rowData"]), &call.RowData); err != nil {
			writeJSON(w, map[string]interface{}{"success": false, "error": "bad rowData"})
			return
		}
	}
	s.calls = append(s.calls, call)

	if msg, ok := s.failure[call.Action]; ok {
		writeJSON(w, map[string]interface{}{"success": false, "error": msg})
		return
	}

	switch call.Action {
	case "insert":
		row := make([]interface{}, len(call.RowData))
		for i, v := range call.RowData {
			row[i] = v
		}
		s.sheets[call.Sheet] = append(s.sheets[call.Sheet], row)
	case "update":
		rows := s.sheets[call.Sheet]
		if call.RowIndex < 1 || call.RowIndex > len(rows) {
			writeJSON(w, map[string]interface{}{"success": false, "error": "Invalid row index"})
			return
		}
		row := rows[call.RowIndex-1]
		for i, v := range call.RowData {
			if v == "" {
				continue
			}
			for len(row) <= i {
				row = append(row, "")
			}
			row[i] = v
		}
		rows[call.RowIndex-1] = row
	case "delete":
		rows := s.sheets[call.Sheet]
		if call.RowIndex < 1 || call.RowIndex > len(rows) {
			writeJSON(w, map[string]interface{}{"success": false, "error": "Invalid row index"})
			return
		}
		s.sheets[call.Sheet] = append(rows[:call.RowIndex-1], rows[call.RowIndex:]...)
	case "uploadFile":
		up := Upload{
			FileName: form["fileName"],
			MimeType: form["mimeType"],
			FolderID: form["folderId"],
			DataURL:  form["base64Data"],
			FileURL:  fmt.Sprintf("https://drive.google.com/file/d/fake-%d/view", len(s.uploads)+1),
		}
		s.uploads = append(s.uploads, up)
		writeJSON(w, map[string]interface{}{"success": true, "fileUrl": up.FileURL})
		return
	default:
		writeJSON(w, map[string]interface{}{"success": false, "error": "unknown action"})
		return
	}
	writeJSON(w, map[string]interface{}{"success": true})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
