package stopwatch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

const (
	ExportFileName = "stopwatch_laps.csv"
	ExportMIMEType = "text/csv"

	// NoLapsMessage is shown when an export is requested with an empty log.
	NoLapsMessage = "No laps to export!"
)

var csvHeader = []string{"Lap", "Time", "Milliseconds"}

// LapsCSV serializes laps with a Lap,Time,Milliseconds header, one row per
// lap, every line terminated by "\n".
func LapsCSV(laps []LapEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, lap := range laps {
		row := []string{
			strconv.Itoa(lap.Sequence),
			lap.Time,
			lap.Formatted().Milliseconds(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write lap %d: %w", lap.Sequence, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
