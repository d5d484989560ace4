package units

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ErrNoLengthUnit is returned when a STEP file declares no length unit
var ErrNoLengthUnit = errors.New("no length unit declared")

var (
	entityRegex        = regexp.MustCompile(`^#(\d+)\s*=\s*(.*)$`)
	globalContextRegex = regexp.MustCompile(`GLOBAL_UNIT_ASSIGNED_CONTEXT\s*\(\s*\(([^)]*)\)`)
	referenceRegex     = regexp.MustCompile(`#(\d+)`)
	conversionRegex    = regexp.MustCompile(`CONVERSION_BASED_UNIT\s*\(\s*'([^']*)'`)
	siUnitRegex        = regexp.MustCompile(`SI_UNIT\s*\(\s*(?:\$|\.(\w+)\.)\s*,\s*\.(\w+)\.\s*\)`)
	entityNameRegex    = regexp.MustCompile(`[A-Z_]+`)
)

// FileUnits holds the STEP names of the units a STEP file declares.
// A field is empty when the file declares no unit of that kind.
type FileUnits struct {
	Length string `json:"length,omitempty" yaml:"length,omitempty"`
	Angle  string `json:"angle,omitempty" yaml:"angle,omitempty"`
}

const (
	lengthUnit = "LENGTH_UNIT"
	angleUnit  = "PLANE_ANGLE_UNIT"
)

// FromSTEPFile reads the length unit of a STEP file
func FromSTEPFile(filename string) (string, error) {
	fu, err := ReadSTEPUnitsFile(filename)
	if err != nil {
		return "", err
	}
	if fu.Length == "" {
		return "", fmt.Errorf("%s: %w", filename, ErrNoLengthUnit)
	}
	return fu.Length, nil
}

// FromSTEP returns the STEP name of the length unit declared in a STEP
// physical file, such as "MILLIMETRE" or "INCH".
func FromSTEP(r io.Reader) (string, error) {
	fu, err := ReadSTEPUnits(r)
	if err != nil {
		return "", err
	}
	if fu.Length == "" {
		return "", ErrNoLengthUnit
	}
	return fu.Length, nil
}

// ReadSTEPUnitsFile reads the length and plane angle units of a STEP file
func ReadSTEPUnitsFile(filename string) (FileUnits, error) {
	file, err := os.Open(filename)
	if err != nil {
		return FileUnits{}, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	fu, err := ReadSTEPUnits(file)
	if err != nil {
		return FileUnits{}, fmt.Errorf("%s: %w", filename, err)
	}
	return fu, nil
}

// ReadSTEPUnits scans a STEP physical file for its length and plane angle
// units. For each kind the unit referenced by the global unit context wins;
// otherwise the first conversion-based unit, then the first SI unit.
func ReadSTEPUnits(r io.Reader) (FileUnits, error) {
	entities := make(map[string]string)
	var order []string
	var global []string

	reader := bufio.NewReader(r)
	for {
		statement, err := reader.ReadString(';')
		if strings.Contains(statement, "UNIT") {
			statement = strings.Join(strings.Fields(statement), " ")
			statement = strings.TrimSuffix(statement, ";")

			if m := entityRegex.FindStringSubmatch(statement); m != nil {
				entities[m[1]] = m[2]
				order = append(order, m[1])
			}
			if m := globalContextRegex.FindStringSubmatch(statement); m != nil {
				for _, ref := range referenceRegex.FindAllStringSubmatch(m[1], -1) {
					global = append(global, ref[1])
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return FileUnits{}, fmt.Errorf("error reading STEP data: %w", err)
		}
	}

	return FileUnits{
		Length: pickUnit(lengthUnit, entities, order, global),
		Angle:  pickUnit(angleUnit, entities, order, global),
	}, nil
}

func pickUnit(kind string, entities map[string]string, order, global []string) string {
	for _, id := range global {
		if name, ok := unitName(kind, entities[id]); ok {
			return name
		}
	}

	var si string
	for _, id := range order {
		body := entities[id]
		if !hasKind(kind, body) {
			continue
		}
		if m := conversionRegex.FindStringSubmatch(body); m != nil {
			return strings.ToUpper(m[1])
		}
		if name, ok := unitName(kind, body); ok && si == "" {
			si = name
		}
	}
	return si
}

// hasKind matches kind as a whole entity name, so LENGTH_UNIT does not match
// inside LENGTH_MEASURE_WITH_UNIT and similar
func hasKind(kind, body string) bool {
	for _, name := range entityNameRegex.FindAllString(body, -1) {
		if name == kind {
			return true
		}
	}
	return false
}

func unitName(kind, body string) (string, bool) {
	if !hasKind(kind, body) {
		return "", false
	}
	if m := conversionRegex.FindStringSubmatch(body); m != nil {
		return strings.ToUpper(m[1]), true
	}
	if m := siUnitRegex.FindStringSubmatch(body); m != nil {
		return m[1] + m[2], true
	}
	return "", false
}
