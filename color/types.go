package color

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gain is the RGBC analog gain (CONTROL.AGAIN). The zero value means "unset".
type Gain byte

const (
	Gain1x Gain = iota + 1
	Gain4x
	Gain16x
	Gain60x
)

var gainNames = []string{"", "1x", "4x", "16x", "60x"}

func (g Gain) code() (byte, error) {
	switch g {
	case Gain1x:
		return 0, nil
	case Gain4x:
		return 1, nil
	case Gain16x:
		return 2, nil
	case Gain60x:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: unknown gain %d", ErrInvalidInputData, byte(g))
	}
}

func (g Gain) String() string {
	if int(g) < len(gainNames) && g != 0 {
		return gainNames[g]
	}
	return fmt.Sprintf("Gain(%d)", byte(g))
}

// ParseGain accepts "1x", "4x", "16x" and "60x" (the "x" suffix is optional).
func ParseGain(s string) (Gain, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasSuffix(name, "x") {
		name += "x"
	}
	for i := 1; i < len(gainNames); i++ {
		if gainNames[i] == name {
			return Gain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown gain %q", ErrInvalidInputData, s)
}

func (g Gain) MarshalText() ([]byte, error) {
	if _, err := g.code(); err != nil {
		return nil, err
	}
	return []byte(g.String()), nil
}

func (g *Gain) UnmarshalText(text []byte) error {
	v, err := ParseGain(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

func (g Gain) MarshalYAML() (interface{}, error) {
	if g == 0 {
		return nil, nil
	}
	return g.String(), nil
}

func (g *Gain) UnmarshalYAML(value *yaml.Node) error {
	return g.UnmarshalText([]byte(value.Value))
}

// Persistence is the number of consecutive out of range RGBC readings
// required before an interrupt is asserted (APERS). The zero value means "unset".
type Persistence byte

const (
	PersistenceEvery Persistence = iota + 1 // every RGBC cycle
	PersistenceAny                          // any value outside of threshold range
	Persistence2
	Persistence3
	Persistence5
	Persistence10
	Persistence15
	Persistence20
	Persistence25
	Persistence30
	Persistence35
	Persistence40
	Persistence45
	Persistence50
	Persistence55
	Persistence60
)

var persistenceNames = []string{"", "every", "any", "2", "3", "5", "10", "15", "20", "25", "30", "35", "40", "45", "50", "55", "60"}

func (p Persistence) code() (byte, error) {
	switch p {
	case PersistenceEvery:
		return 0, nil
	case PersistenceAny:
		return 1, nil
	case Persistence2:
		return 2, nil
	case Persistence3:
		return 3, nil
	case Persistence5:
		return 4, nil
	case Persistence10:
		return 5, nil
	case Persistence15:
		return 6, nil
	case Persistence20:
		return 7, nil
	case Persistence25:
		return 8, nil
	case Persistence30:
		return 9, nil
	case Persistence35:
		return 10, nil
	case Persistence40:
		return 11, nil
	case Persistence45:
		return 12, nil
	case Persistence50:
		return 13, nil
	case Persistence55:
		return 14, nil
	case Persistence60:
		return 15, nil
	default:
		return 0, fmt.Errorf("%w: unknown persistence %d", ErrInvalidInputData, byte(p))
	}
}

func (p Persistence) String() string {
	if int(p) < len(persistenceNames) && p != 0 {
		return persistenceNames[p]
	}
	return fmt.Sprintf("Persistence(%d)", byte(p))
}

// ParsePersistence accepts "every", "any" and the cycle counts 2, 3, 5, 10 ... 60.
func ParsePersistence(s string) (Persistence, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := 1; i < len(persistenceNames); i++ {
		if persistenceNames[i] == name {
			return Persistence(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown persistence %q", ErrInvalidInputData, s)
}

func (p Persistence) MarshalText() ([]byte, error) {
	if _, err := p.code(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *Persistence) UnmarshalText(text []byte) error {
	v, err := ParsePersistence(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Persistence) MarshalYAML() (interface{}, error) {
	if p == 0 {
		return nil, nil
	}
	return p.String(), nil
}

func (p *Persistence) UnmarshalYAML(value *yaml.Node) error {
	return p.UnmarshalText([]byte(value.Value))
}
