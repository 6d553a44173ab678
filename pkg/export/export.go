package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/garage/core/garage"
)

// WriteJSON writes the maintenance history to w in JSON format.
func WriteJSON(w io.Writer, entries []garage.HistoryEntry) error {
	enc := json.NewEncoder(w)
	return enc.Encode(entries)
}

// WriteCSV writes the maintenance history to w in CSV format, one row per
// record. Uninformed costs stay empty rather than rendering as zero.
func WriteCSV(w io.Writer, entries []garage.HistoryEntry) error {
	cw := csv.NewWriter(w)
	header := []string{"vehicle_key", "vehicle", "date", "time", "service_type", "status", "cost", "description"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		cost := ""
		if e.Record.Cost != nil {
			cost = strconv.FormatFloat(*e.Record.Cost, 'f', -1, 64)
		}
		rec := []string{
			e.VehicleKey,
			e.VehicleName,
			e.Record.Date,
			e.Record.TimeOfDay,
			e.Record.ServiceType,
			string(e.Record.Status),
			cost,
			e.Record.Description,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
