// Package statusfile mirrors the engine status to a JSON file on disk,
// useful for scripts and monitoring agents that cannot speak HTTP.
package statusfile

import (
	"encoding/json"

	"github.com/fanbridge/fanbridge/internal/engine"
	"github.com/fanbridge/fanbridge/internal/ui"
	"github.com/fanbridge/fanbridge/internal/util"
)

// Writer implements engine.Reporter by replacing the status file
// atomically on every report, readers never see a partial document.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Report(status engine.Status) {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		ui.Warning("Unable to marshal status: %v", err)
		return
	}
	err = util.WriteFileAtomic(data, w.path)
	if err != nil {
		ui.Warning("Unable to write status file %s: %v", w.path, err)
	}
}
