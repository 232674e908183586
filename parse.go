package lsystem

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a grammar together with the parameters of a
// draw. Symbol sequences are plain strings, split by Symbols.
type Document struct {
	Name        string                          `yaml:"name"`
	Start       string                          `yaml:"start"`
	Rules       map[string][]ProductionDocument `yaml:"rules"`
	Step        float64                         `yaml:"step"`
	Scale       float64                         `yaml:"scale,omitempty"`
	Angle       float64                         `yaml:"angle"`
	Generations int                             `yaml:"generations"`
	Seed        uint64                          `yaml:"seed"`
	Alphabet    *AlphabetDocument               `yaml:"alphabet,omitempty"`
}

// ProductionDocument is one alternative. Weight defaults to 1 when left out.
type ProductionDocument struct {
	Replacement string `yaml:"replacement"`
	Weight      *int   `yaml:"weight,omitempty"`
}

// UnmarshalYAML also accepts a bare string as a production of weight 1.
func (p *ProductionDocument) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Replacement = value.Value
		p.Weight = nil
		return nil
	}
	type plain ProductionDocument
	return value.Decode((*plain)(p))
}

type AlphabetDocument struct {
	Draw []string `yaml:"draw,omitempty"`
	Move []string `yaml:"move,omitempty"`
	Skip []string `yaml:"skip,omitempty"`
}

func (ad *AlphabetDocument) alphabet(rules RuleSet) Alphabet {
	set := func(names []string) SymbolSet {
		ss := make(SymbolSet, len(names))
		for _, n := range names {
			ss.Add(Symbol(n))
		}
		return ss
	}
	return Alphabet{
		Draw:  set(ad.Draw),
		Move:  set(ad.Move),
		Skip:  set(ad.Skip),
		Rules: rules,
	}
}

// RuleSet builds and validates the production rules of the document.
func (d *Document) RuleSet() (RuleSet, error) {
	rules := make(RuleSet, len(d.Rules))
	for key, alternatives := range d.Rules {
		if key == "" {
			return nil, errors.Errorf("document %q: rule with empty predecessor", d.Name)
		}
		productions := make([]Production, len(alternatives))
		for i, alt := range alternatives {
			weight := 1
			if alt.Weight != nil {
				weight = *alt.Weight
			}
			productions[i] = Production{
				Replacement: Symbols(alt.Replacement),
				Weight:      weight,
			}
		}
		if err := rules.Add(Symbol(key), productions...); err != nil {
			return nil, errors.Wrapf(err, "document %q", d.Name)
		}
	}
	return rules, nil
}

// Spec converts the document into a validated Spec.
func (d *Document) Spec() (Spec, error) {
	if d.Start == "" {
		return Spec{}, errors.Errorf("document %q: empty start", d.Name)
	}
	if d.Generations < 0 {
		return Spec{}, errors.Errorf("document %q: negative generations %d", d.Name, d.Generations)
	}
	rules, err := d.RuleSet()
	if err != nil {
		return Spec{}, err
	}

	spec := Spec{
		Start:      Symbols(d.Start),
		Rules:      rules,
		StepLength: d.Step,
		TurnAngle:  d.Angle,
		Scale:      d.Scale,
	}
	if d.Alphabet != nil {
		spec.Alphabet = d.Alphabet.alphabet(rules)
	}
	return spec, nil
}

// LSystem builds an engine seeded from the document.
func (d *Document) LSystem() (*LSystem, error) {
	spec, err := d.Spec()
	if err != nil {
		return nil, err
	}
	return New(spec, d.Seed), nil
}

type Decoder struct {
	yamlDecoder *yaml.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		yamlDecoder: yaml.NewDecoder(r),
	}
}

// Decode reads the next document of a stream. It returns io.EOF when the
// stream is exhausted.
func (dec *Decoder) Decode() (*Document, error) {
	doc := &Document{}
	if err := dec.yamlDecoder.Decode(doc); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "decoding grammar document")
	}
	return doc, nil
}

// DecodeAll reads every document of a stream.
func DecodeAll(r io.Reader) ([]*Document, error) {
	dec := NewDecoder(r)
	var docs []*Document
	for {
		doc, err := dec.Decode()
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}
