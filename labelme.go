package ocrconv

// labelme specific functionality.
//
// See https://github.com/wkentaro/labelme for the annotation file structure.

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// LabelMeShape is a single labelled shape within a labelme file.
type LabelMeShape struct {
	Label  string      `json:"label"`
	Points [][]float64 `json:"points"`
}

// LabelMeFile defines the labelme annotation structure for a single image.
// Only the fields consumed by the conversion are declared.
type LabelMeFile struct {
	Shapes []LabelMeShape `json:"shapes"`
}

// FromLabelMe reads and parses the labelme annotation file at path.
//
// The regions are returned in the order in which the shapes appear in the
// file. Shapes may carry more than two points (polygons); only the first two
// are used as the corner points of the region.
func FromLabelMe(path string) ([]Region, error) {
	enc, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lmData LabelMeFile
	if err := json.Unmarshal(enc, &lmData); err != nil {
		return nil, fmt.Errorf("failed to parse labelme input from %q: %v", path, err)
	}

	// Convert to the intermediate representation.
	regions := make([]Region, 0, len(lmData.Shapes))
	for i, s := range lmData.Shapes {
		if len(s.Points) < 2 || len(s.Points[0]) < 2 || len(s.Points[1]) < 2 {
			return nil, fmt.Errorf("shape %d in %q does not have two (x, y) points", i, path)
		}

		regions = append(regions, Region{
			Label: s.Label,
			Points: [2]Point{
				{X: s.Points[0][0], Y: s.Points[0][1]},
				{X: s.Points[1][0], Y: s.Points[1][1]},
			},
		})
	}

	return regions, nil
}
