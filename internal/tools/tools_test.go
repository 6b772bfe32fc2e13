package tools

import (
	"context"
	"math/rand"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/yamatools/internal/lifecycle"
	"github.com/jask/yamatools/internal/widget"
)

type notes []string

func (n *notes) Info(msg string) { *n = append(*n, msg) }

type surface struct{}

func (surface) Size() (int, int) { return 100, 30 }

func openMenu(t *testing.T, c *lifecycle.Context) {
	t.Helper()
	c.Dispatch(widget.Event{Action: widget.Press, Button: widget.ButtonPrimary, X: 21, Y: 21, Target: widget.Anchor})
	c.Dispatch(widget.Event{Action: widget.Release, X: 21, Y: 21, Target: widget.Anchor})
	require.True(t, c.Widget().MenuOpen())
}

func selectRow(c *lifecycle.Context, i int) widget.Result {
	c.Dispatch(widget.Event{Action: widget.Press, Button: widget.ButtonPrimary, Target: widget.MenuRow(i)})
	return c.Dispatch(widget.Event{Action: widget.Release, Target: widget.MenuRow(i)})
}

func TestBuiltinEntries(t *testing.T) {
	var n notes
	c := lifecycle.New(lifecycle.Options{GameMaster: true, Notifier: &n})
	Register(c, &n, rand.New(rand.NewSource(7)))
	require.NoError(t, c.Construct(context.Background(), surface{}))
	c.ToggleLock()
	n = nil

	labels := []string{}
	for _, e := range c.Registry.Entries() {
		labels = append(labels, e.Label)
	}
	require.Equal(t, []string{"Roll d20", "Roll 2d6", "Flip coin", "Recentre"}, labels)

	openMenu(t, c)
	selectRow(c, 0)
	require.False(t, c.Widget().MenuOpen())
	require.Len(t, n, 1)
	m := regexp.MustCompile(`^d20: (\d+)$`).FindStringSubmatch(n[0])
	require.NotNil(t, m)
	v, _ := strconv.Atoi(m[1])
	require.GreaterOrEqual(t, v, 1)
	require.LessOrEqual(t, v, 20)

	openMenu(t, c)
	selectRow(c, 1)
	require.Regexp(t, `^2d6: \d \+ \d = \d+$`, n[1])

	openMenu(t, c)
	selectRow(c, 2)
	require.Contains(t, []string{"Coin: heads", "Coin: tails"}, n[2])
}

func TestRecentreEntryPersists(t *testing.T) {
	var n notes
	c := lifecycle.New(lifecycle.Options{GameMaster: true})
	Register(c, &n, rand.New(rand.NewSource(1)))
	require.NoError(t, c.Construct(context.Background(), surface{}))
	c.ToggleLock()

	openMenu(t, c)
	res := selectRow(c, 3)
	want := widget.Position{X: 47, Y: 13}
	require.Equal(t, want, c.Widget().Position())
	require.Equal(t, []widget.Write{{Key: widget.KeyPosition, Value: want}}, res.Writes)
}
