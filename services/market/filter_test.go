package market

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeAttrsOrder(t *testing.T) {
	// output order is fixed to Backdrop, Model, Symbol no matter how
	// the filter was populated
	f := Filter{Symbol: "Rich", Backdrop: "Black", Model: "Top Hat"}
	require.Equal(t,
		"attrs=Backdrop___Black&attrs=Model___Top+Hat&attrs=Symbol___Rich",
		EncodeAttrs(f),
	)
}

func TestEncodeAttrsSentinel(t *testing.T) {
	for _, v := range []string{"all", "ALL", " All ", "aLl"} {
		require.Empty(t, EncodeAttrs(Filter{Backdrop: v}), "sentinel %q should be inactive", v)
		require.Equal(t,
			"attrs=Model___Santa",
			EncodeAttrs(Filter{Backdrop: v, Model: "Santa", Symbol: ""}),
		)
	}
}

func TestEncodeAttrsEmpty(t *testing.T) {
	require.Empty(t, EncodeAttrs(Filter{}))
	require.Empty(t, EncodeAttrs(Filter{Backdrop: "   ", Model: "\t", Symbol: "all"}))
}

func TestEncodeAttrsWhitespace(t *testing.T) {
	require.Equal(t,
		"attrs=Backdrop___Deep+Blue",
		EncodeAttrs(Filter{Backdrop: " Deep  Blue "}),
	)
}
