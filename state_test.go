package cobra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dispatch runs args against the tree and returns the resulting state. The
// leaf handler is a no-op so the accessors can be exercised afterwards.
func dispatch(t *testing.T, cli *CLI, args []string) *State {
	t.Helper()
	_, err := cli.Execute(context.Background(), args, nil)
	require.NoError(t, err)
	return cli.LastState()
}

func newAccessorTree(t *testing.T) *CLI {
	t.Helper()
	cli, err := New("app")
	require.NoError(t, err)
	sub, err := cli.AddCommand(&Command{
		Use: "sub",
		Run: func(ctx context.Context, s *State) (int, error) { return 0, nil },
	})
	require.NoError(t, err)

	for _, f := range []Flag{
		{Type: NumberFlag, Name: "x"},
		{Type: NumberFlag, Name: "port", Short: "p", Default: 8080},
		{Type: StringFlag, Name: "env", Short: "e", Default: "dev"},
		{Type: BooleanFlag, Name: "force"},
		{Type: StringFlag, Name: "tag", Short: "t", Required: true},
	} {
		_, err = sub.AddFlag(f)
		require.NoError(t, err)
	}
	return cli
}

func TestValue(t *testing.T) {
	t.Parallel()

	t.Run("explicit value wins", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--env", "prod"})
		v, err := Value[string](s, "env")
		require.NoError(t, err)
		assert.Equal(t, "prod", v)
	})

	t.Run("default applies when unset", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		v, err := Value[string](s, "env")
		require.NoError(t, err)
		assert.Equal(t, "dev", v)

		p, err := Value[float64](s, "port")
		require.NoError(t, err)
		assert.Equal(t, float64(8080), p)
	})

	t.Run("zero value when unset and no default", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		x, err := Value[float64](s, "x")
		require.NoError(t, err)
		assert.Zero(t, x)
		f, err := Value[bool](s, "force")
		require.NoError(t, err)
		assert.False(t, f)
	})

	t.Run("short name lookup", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "-e", "staging"})
		v, err := Value[string](s, "e")
		require.NoError(t, err)
		assert.Equal(t, "staging", v)
	})

	t.Run("explicit zero is a value", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--port", "0"})
		p, err := Value[float64](s, "port")
		require.NoError(t, err)
		assert.Zero(t, p)
		assert.True(t, s.Changed("port"))
	})

	t.Run("first element of repeated flag", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--x", "1", "--x", "2"})
		v, err := Value[float64](s, "x")
		require.NoError(t, err)
		assert.Equal(t, float64(1), v)
	})

	t.Run("int reads of a number flag", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--port", "9090"})
		p, err := Value[int](s, "port")
		require.NoError(t, err)
		assert.Equal(t, 9090, p)
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		_, err := Value[string](s, "bogus")
		var unknown *UnknownFlagError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "bogus", unknown.Key)
	})

	t.Run("near-miss suggestion", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		_, err := Value[bool](s, "forse")
		var unknown *UnknownFlagError
		require.ErrorAs(t, err, &unknown)
		assert.Contains(t, unknown.Suggestions, "force")
	})
}

func TestValues(t *testing.T) {
	t.Parallel()

	t.Run("repeated flag", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--x", "1", "--x", "2"})
		vs, err := Values[float64](s, "x")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, vs)
	})

	t.Run("single occurrence", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--x", "1"})
		vs, err := Values[float64](s, "x")
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, vs)
	})

	t.Run("unset is empty, not the default", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		vs, err := Values[float64](s, "port")
		require.NoError(t, err)
		assert.Empty(t, vs)
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	t.Run("no default means any value is a change", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--x", "0"})
		assert.True(t, s.Changed("x"))
	})

	t.Run("value equal to the default is not a change", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--port", "8080"})
		assert.False(t, s.Changed("port"))
	})

	t.Run("unset is not a change", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		assert.False(t, s.Changed("port"))
	})
}

func TestCheckRequired(t *testing.T) {
	t.Parallel()

	t.Run("missing required flag", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub"})
		err := s.CheckRequired()
		var missing *RequiredFlagError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "tag", missing.Flag.Name)
	})

	t.Run("required flag provided", func(t *testing.T) {
		t.Parallel()
		s := dispatch(t, newAccessorTree(t), []string{"sub", "--tag", "v1"})
		require.NoError(t, s.CheckRequired())
	})

	t.Run("explicitly passing the default still counts as missing", func(t *testing.T) {
		t.Parallel()
		cli, err := New("app")
		require.NoError(t, err)
		sub, err := cli.AddCommand(&Command{
			Use: "sub",
			Run: func(ctx context.Context, s *State) (int, error) { return 0, nil },
		})
		require.NoError(t, err)
		_, err = sub.AddFlag(Flag{Type: StringFlag, Name: "mode", Default: "fast", Required: true})
		require.NoError(t, err)

		// The check compares the bound value against the default, so the
		// default passed by hand is indistinguishable from no value at all.
		s := dispatch(t, cli, []string{"sub", "--mode", "fast"})
		var missing *RequiredFlagError
		require.ErrorAs(t, s.CheckRequired(), &missing)

		s = dispatch(t, cli, []string{"sub", "--mode", "slow"})
		require.NoError(t, s.CheckRequired())
	})
}
