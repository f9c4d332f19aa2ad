package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	"gopkg.in/yaml.v3"
)

//go:embed template/persona.yaml
var personaRaw []byte

const defaultMaxReplyChars = 600

// Config selects where the persona registry is read from. An empty File
// uses the document embedded in the binary.
type Config struct {
	File string `envconfig:"FILE" split_words:"true"`
}

// Load returns the registry described by c.
func (c Config) Load() (*Registry, error) {
	if path := strings.TrimSpace(c.File); path != "" {
		return LoadRegistryFile(path)
	}
	return LoadRegistry()
}

// Mode is one persona lens a reply can be steered through.
type Mode struct {
	Key         contractx.ModeKey `yaml:"key"`
	Label       string            `yaml:"label"`
	Summary     string            `yaml:"summary"`
	Criteria    string            `yaml:"criteria"`
	Instruction string            `yaml:"instruction"`
}

type registryDocument struct {
	Voice         string            `yaml:"voice"`
	Style         string            `yaml:"style"`
	Safety        string            `yaml:"safety"`
	SharedRules   string            `yaml:"shared_rules"`
	CTAPolicy     string            `yaml:"cta_policy"`
	ReplyScaffold string            `yaml:"reply_scaffold"`
	MaxReplyChars int               `yaml:"max_reply_chars"`
	DefaultMode   contractx.ModeKey `yaml:"default_mode"`
	Modes         []Mode            `yaml:"modes"`
}

// Registry holds the persona fragments. It is built once and never mutated,
// so a single instance is shared by every request.
type Registry struct {
	voice         string
	style         string
	safety        string
	sharedRules   string
	ctaPolicy     string
	replyScaffold string
	maxReplyChars int
	defaultMode   contractx.ModeKey
	modes         []Mode
	index         map[contractx.ModeKey]int
}

// LoadRegistry parses the embedded persona document.
func LoadRegistry() (*Registry, error) {
	return ParseRegistry(personaRaw)
}

func MustLoadRegistry() *Registry {
	r, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRegistryFile parses a persona document from disk.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes and validates a YAML persona document.
func ParseRegistry(data []byte) (*Registry, error) {
	var doc registryDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode persona document: %v", contractx.ErrValidation, err)
	}

	r := &Registry{
		voice:         strings.TrimSpace(doc.Voice),
		style:         strings.TrimSpace(doc.Style),
		safety:        strings.TrimSpace(doc.Safety),
		sharedRules:   strings.TrimSpace(doc.SharedRules),
		ctaPolicy:     strings.TrimSpace(doc.CTAPolicy),
		replyScaffold: strings.TrimSpace(doc.ReplyScaffold),
		maxReplyChars: doc.MaxReplyChars,
		defaultMode:   contractx.ModeKey(strings.TrimSpace(string(doc.DefaultMode))),
		modes:         make([]Mode, 0, len(doc.Modes)),
		index:         make(map[contractx.ModeKey]int, len(doc.Modes)),
	}
	if r.maxReplyChars <= 0 {
		r.maxReplyChars = defaultMaxReplyChars
	}

	required := map[string]string{
		"voice":          r.voice,
		"style":          r.style,
		"safety":         r.safety,
		"shared_rules":   r.sharedRules,
		"cta_policy":     r.ctaPolicy,
		"reply_scaffold": r.replyScaffold,
	}
	for name, v := range required {
		if v == "" {
			return nil, fmt.Errorf("%w: persona fragment %q is empty", contractx.ErrValidation, name)
		}
	}

	for _, m := range doc.Modes {
		m.Key = contractx.ModeKey(strings.TrimSpace(string(m.Key)))
		m.Label = strings.TrimSpace(m.Label)
		m.Summary = strings.TrimSpace(m.Summary)
		m.Criteria = strings.TrimSpace(m.Criteria)
		m.Instruction = strings.TrimSpace(m.Instruction)

		if m.Key == "" {
			return nil, fmt.Errorf("%w: mode key is empty", contractx.ErrValidation)
		}
		if _, dup := r.index[m.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate mode %q", contractx.ErrValidation, m.Key)
		}
		if m.Label == "" || m.Instruction == "" {
			return nil, fmt.Errorf("%w: mode %q needs a label and an instruction", contractx.ErrValidation, m.Key)
		}
		r.index[m.Key] = len(r.modes)
		r.modes = append(r.modes, m)
	}
	if len(r.modes) == 0 {
		return nil, fmt.Errorf("%w: persona document has no modes", contractx.ErrValidation)
	}
	if !r.Has(r.defaultMode) {
		return nil, fmt.Errorf("%w: default mode %q is not a registered mode", contractx.ErrValidation, r.defaultMode)
	}

	return r, nil
}

// Modes returns the registered modes in document order.
func (r *Registry) Modes() []Mode {
	return append([]Mode(nil), r.modes...)
}

func (r *Registry) Lookup(key contractx.ModeKey) (Mode, bool) {
	i, ok := r.index[key]
	if !ok {
		return Mode{}, false
	}
	return r.modes[i], true
}

func (r *Registry) Has(key contractx.ModeKey) bool {
	_, ok := r.index[key]
	return ok
}

func (r *Registry) DefaultMode() contractx.ModeKey {
	return r.defaultMode
}

func (r *Registry) MaxReplyChars() int {
	return r.maxReplyChars
}
