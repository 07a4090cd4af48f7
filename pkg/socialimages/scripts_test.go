package socialimages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocation(t *testing.T) {
	expr, err := invocation("(a, b) => a", "h1", []Feature{{Icon: "/i.png", Size: "10"}})
	require.NoError(t, err)
	assert.Equal(t, `((a, b) => a)("h1", [{"icon":"/i.png","size":"10","unit":"","key":""}])`, expr)

	expr, err = invocation(fontsReadyJS)
	require.NoError(t, err)
	assert.Equal(t, "("+fontsReadyJS+")()", expr)
}

func TestInvocationEscapesHTML(t *testing.T) {
	expr, err := invocation("(t) => t", `</script><b>"x"</b>`)
	require.NoError(t, err)
	assert.Equal(t, `((t) => t)("\u003c/script\u003e\u003cb\u003e\"x\"\u003c/b\u003e")`, expr)
}
