package layout

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/polygon-io/simple-binary-encoding/errors"
)

// Options adjusts layout policy for a resolve operation. The zero value
// defers every choice to the schema's own declarations.
type Options struct {
	// ConstantFootprint, when set, overrides the schema's declared rule for
	// whether constant presence fields occupy space and advance the block
	// cursor.
	ConstantFootprint *bool `yaml:"constantFootprint"`

	// BlockAlignment applies a default alignment to blocks that declare
	// none. Zero leaves undeclared blocks unaligned.
	BlockAlignment int `yaml:"blockAlignment"`
}

// LoadOptions parses Options from YAML.
func LoadOptions(data []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, errors.Wrap(errors.PhaseResolve, errors.KindInvalidData, err, "parse layout options")
	}
	if opts.BlockAlignment < 0 {
		return Options{}, errors.InvalidData(errors.PhaseResolve, nil, "blockAlignment must not be negative")
	}
	return opts, nil
}

// LoadOptionsFile reads and parses Options from a YAML file.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrap(errors.PhaseResolve, errors.KindInvalidData, err, "read layout options file")
	}
	return LoadOptions(data)
}
