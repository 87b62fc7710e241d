package schema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countNode struct {
	tag   string
	value any
	calls int
}

func (n *countNode) Type() string { return n.tag }
func (n *countNode) Value() any   { return n.value }
func (n *countNode) Serialize() string {
	n.calls++
	return fmt.Sprintf("%v", n.value)
}
func (n *countNode) Clone() Node { c := *n; return &c }

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	s, ok := reg.Lookup("text")
	require.True(t, ok)
	assert.Equal(t, "text", s.ID)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_Check(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	// Check is membership only: the mismatching value still passes.
	assert.True(t, reg.Check(&countNode{tag: "text", value: 42}))
	assert.False(t, reg.Check(&countNode{tag: "other", value: "x"}))
}

func TestRegistry_Validate(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	ok, err := reg.Validate(&countNode{tag: "text", value: "hi"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reg.Validate(&countNode{tag: "text", value: 42})
	require.NoError(t, err, "a shape mismatch is not an error")
	assert.False(t, ok)

	_, err = reg.Validate(&countNode{tag: "ghost", value: "hi"})
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "ghost", nfe.Type)
}

func TestRegistry_Batch(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	got := reg.Batch([]Node{
		&countNode{tag: "text", value: "ok"},
		&countNode{tag: "text", value: 42},
		&countNode{tag: "ghost", value: "ok"},
	})
	assert.Equal(t, []bool{true, false, false}, got)
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	n := &countNode{tag: "text", value: "hi"}

	out, err := reg.Resolve(n, false)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.Equal(t, 1, n.calls)

	out, err = reg.Resolve(n, false)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.Equal(t, 1, n.calls, "second resolve must hit the cache")

	_, err = reg.Resolve(n, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n.calls, "skipCache bypasses the memoized value")
}

func TestRegistry_Resolve_Errors(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	_, err := reg.Resolve(&countNode{tag: "ghost", value: "x"}, false)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)

	_, err = reg.Resolve(&countNode{tag: "text", value: 42}, false)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "text", ve.Type)
	assert.Equal(t, "string", ve.Expected)
	assert.Equal(t, "number (int)", ve.Got)
}

func TestRegistry_Resolve_NonComparableNode(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))

	v := valueNode{tag: "text", value: "hi", calls: new(int)}

	out, err := reg.Resolve(v, false)
	require.NoError(t, err)
	assert.Equal(t, "hi", out)

	_, err = reg.Resolve(v, false)
	require.NoError(t, err)
	assert.Equal(t, 2, *v.calls, "non-comparable nodes are never cached")
}

// valueNode implements Node by value and carries a slice, making its
// dynamic type non-comparable.
type valueNode struct {
	tag   string
	value any
	calls *int
	_     []int
}

func (n valueNode) Type() string { return n.tag }
func (n valueNode) Value() any   { return n.value }
func (n valueNode) Serialize() string {
	*n.calls++
	return fmt.Sprintf("%v", n.value)
}
func (n valueNode) Clone() Node { return n }

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(New("text", "string"))
	reg.Register(New("text", "number"))

	s, ok := reg.Lookup("text")
	require.True(t, ok)
	assert.True(t, s.Compare(42), "latest registration wins")
}
