package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// number is an integer attribute kept in literal form.
type number string

// Int parses the literal.
func (n number) Int(attr string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil {
		return 0, &domain.NumberError{Attr: attr, Value: string(n), Err: err}
	}
	return i, nil
}

type writeAttrs struct {
	Value string `mapstructure:"value"`
}

type repeatAttrs struct {
	Number number `mapstructure:"number"`
}

type questionAttrs struct {
	Type string `mapstructure:"type"`
	Text string `mapstructure:"text"`
}

type randomAttrs struct {
	Type string `mapstructure:"type"`
	Min  number `mapstructure:"min"`
	Max  number `mapstructure:"max"`
}

type optionAttrs struct {
	Value  string `mapstructure:"value"`
	Weight number `mapstructure:"weight"`
}

// decodeAttrs copies the node's attributes onto out.
// Fields of out keep their preset value when the attribute is absent, which is how defaults are applied.
func decodeAttrs(node *domain.Node, out any) error {
	if len(node.Attrs) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(node.Attrs); err != nil {
		return fmt.Errorf("decoding <%s> attributes: %w", node.Tag, err)
	}
	return nil
}
