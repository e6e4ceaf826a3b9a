package palette

import (
	"sort"

	nmerr "github.com/amterp/namemap/internal/errors"
)

// Categorical schemes, packed as consecutive rrggbb triplets. Each consists of
// five hue groups of four shades, darkest first.
var schemes = map[string][]string{
	"category20":  splitColorString("1f77b4aec7e8ff7f0effbb782ca02c98df8ad62728ff98969467bdc5b0d58c564bc49c94e377c2f7b6d27f7f7fc7c7c7bcbd22dbdb8d17becf9edae5"),
	"category20b": splitColorString("393b795254a36b6ecf9c9ede6379398ca252b5cf6bcedb9c8c6d31bd9e39e7ba52e7cb94843c39ad494ad6616be7969c7b4173a55194ce6dbdde9ed6"),
	"category20c": splitColorString("3182bd6baed69ecae1c6dbefe6550dfd8d3cfdae6bfdd0a231a35474c476a1d99bc7e9c0756bb19e9ac8bcbddcdadaeb636363969696bdbdbdd9d9d9"),
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// Scheme returns a copy of the named base scheme.
func Scheme(name string) ([]string, error) {
	colors, ok := schemes[name]
	if !ok {
		return nil, nmerr.SchemeNotFound(name)
	}
	return append([]string(nil), colors...), nil
}

// SchemeNames lists the available scheme names in sorted order.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
