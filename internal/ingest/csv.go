package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/SharodX/keymark-heat-pumps/internal/logging"
)

// corpusColumns is the expected header of a measurement corpus CSV.
var corpusColumns = []string{
	"manufacturer_name", "model_name", "variant_name", "dimension", "en_code", "value",
}

// ComboMeasurements pairs a combo with its measurement set.
type ComboMeasurements struct {
	Combo        Combo
	Measurements MeasurementSet
}

// LoadMeasurementsCSV reads a measurement corpus in long form, one
// EN-code value per row, and groups the rows into per-combo measurement
// sets. Combos keep their order of first appearance so batch output is
// reproducible.
func LoadMeasurementsCSV(ctx context.Context, r io.Reader) ([]ComboMeasurements, error) {
	log := logging.FromContext(ctx)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(corpusColumns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}
	for i, want := range corpusColumns {
		if header[i] != want {
			return nil, fmt.Errorf("corpus header column %d is %q, expected %q", i+1, header[i], want)
		}
	}

	index := make(map[Combo]int)
	var combos []ComboMeasurements

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", line, err)
		}

		dim, err := ParseDimension(record[3])
		if err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", line, err)
		}

		value, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("corpus line %d: value %q is not numeric: %w", line, record[5], err)
		}

		combo := Combo{
			Manufacturer: record[0],
			Model:        record[1],
			Variant:      record[2],
			Dimension:    dim,
		}

		i, ok := index[combo]
		if !ok {
			i = len(combos)
			index[combo] = i
			combos = append(combos, ComboMeasurements{
				Combo:        combo,
				Measurements: make(MeasurementSet),
			})
		}
		combos[i].Measurements[record[4]] = value
	}

	log.Debug().
		Str("component", "ingest").
		Int("combos", len(combos)).
		Int("rows", line-1).
		Msg("loaded measurement corpus")

	return combos, nil
}
