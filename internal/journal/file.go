package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/laundrosim/backend/internal/event"
)

// File is a durable single-file journal: one JSON object per line, the
// event's flat form with a "seq" field merged in. Appends are written as a
// single buffered write and fsynced before the sequence number is handed
// back, so an acknowledged append survives a crash. Recovery on open
// truncates a trailing partial line left by a crash mid-write.
type File struct {
	mu      sync.Mutex
	f       *os.File
	path    string
	nextSeq uint64
	closed  bool
}

// OpenFile opens (or creates) the journal at path and recovers its tail.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	j := &File{f: f, path: path, nextSeq: 1}
	if err := j.recover(); err != nil {
		f.Close()
		return nil, err
	}
	return j, nil
}

// recover scans the file, counts committed records and truncates an
// incomplete trailing line.
func (j *File) recover() error {
	if _, err := j.f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var (
		goodEnd int64
		count   uint64
		rd      = bufio.NewReader(j.f)
	)
	for {
		line, err := rd.ReadBytes('\n')
		if err == io.EOF {
			if len(line) > 0 {
				slog.Warn("journal recovery: truncating partial trailing line",
					"path", j.path, "bytes", len(line))
			}
			break
		}
		if err != nil {
			return fmt.Errorf("journal: recover %s: %w", j.path, err)
		}
		if !json.Valid(bytes.TrimSpace(line)) {
			slog.Warn("journal recovery: truncating invalid trailing line",
				"path", j.path, "seq", count+1)
			break
		}
		goodEnd += int64(len(line))
		count++
	}

	if err := j.f.Truncate(goodEnd); err != nil {
		return fmt.Errorf("journal: truncate %s: %w", j.path, err)
	}
	if _, err := j.f.Seek(goodEnd, io.SeekStart); err != nil {
		return err
	}
	j.nextSeq = count + 1
	return nil
}

func (j *File) Append(ctx context.Context, ev *event.Event) (uint64, error) {
	return j.AppendAll(ctx, []*event.Event{ev})
}

func (j *File) AppendAll(ctx context.Context, evs []*event.Event) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(evs) == 0 {
		return 0, nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}

	firstSeq := j.nextSeq
	var buf bytes.Buffer
	for i, ev := range evs {
		line, err := encodeLine(firstSeq+uint64(i), ev)
		if err != nil {
			return 0, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if _, err := j.f.Write(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("journal: write %s: %w", j.path, err)
	}
	if err := j.f.Sync(); err != nil {
		return 0, fmt.Errorf("journal: fsync %s: %w", j.path, err)
	}
	j.nextSeq += uint64(len(evs))
	return firstSeq, nil
}

// encodeLine merges the seq into the event's flat JSON object.
func encodeLine(seq uint64, ev *event.Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, err
	}
	flat["seq"], _ = json.Marshal(seq)
	return json.Marshal(flat)
}

func (j *File) load(ctx context.Context, keep func(*event.Event) bool) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	data, err := os.ReadFile(j.path)
	if err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", j.path, err)
	}

	var out []Record
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var seqOnly struct {
			Seq uint64 `json:"seq"`
		}
		if err := json.Unmarshal(line, &seqOnly); err != nil {
			return nil, fmt.Errorf("journal: decode seq in %s: %w", j.path, err)
		}
		ev := &event.Event{}
		if err := json.Unmarshal(line, ev); err != nil {
			return nil, fmt.Errorf("journal: decode record %d in %s: %w", seqOnly.Seq, j.path, err)
		}
		if keep == nil || keep(ev) {
			out = append(out, Record{Seq: seqOnly.Seq, Event: ev})
		}
	}
	return out, nil
}

func (j *File) LoadAll(ctx context.Context) ([]Record, error) {
	return j.load(ctx, nil)
}

func (j *File) LoadForAgent(ctx context.Context, agentID string) ([]Record, error) {
	return j.load(ctx, func(ev *event.Event) bool { return ev.AgentID == agentID })
}

func (j *File) Tail(ctx context.Context, agentID string, n int) ([]Record, error) {
	recs, err := j.LoadForAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(recs) {
		return recs, nil
	}
	return recs[len(recs)-n:], nil
}

func (j *File) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.f.Close()
}
