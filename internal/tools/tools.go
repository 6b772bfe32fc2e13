// Package tools contributes the built-in menu entries.
package tools

import (
	"fmt"
	"math/rand"

	"github.com/jask/yamatools/internal/widget"
)

// Registrar accepts menu entries.
type Registrar interface {
	RegisterMenuButton(e widget.MenuEntry)
}

// Host is what the entries act on.
type Host interface {
	Registrar
	Recenter() widget.Result
}

// Register adds the dice, coin and recentre entries. Results go to n. The
// position write from recentring is returned by the event that selected the
// entry.
func Register(h Host, n widget.Notifier, rng *rand.Rand) {
	h.RegisterMenuButton(widget.MenuEntry{Icon: "⬢", Label: "Roll d20", OnClick: func() {
		n.Info(fmt.Sprintf("d20: %d", roll(rng, 1, 20)))
	}})
	h.RegisterMenuButton(widget.MenuEntry{Icon: "⚅", Label: "Roll 2d6", OnClick: func() {
		a, b := roll(rng, 1, 6), roll(rng, 1, 6)
		n.Info(fmt.Sprintf("2d6: %d + %d = %d", a, b, a+b))
	}})
	h.RegisterMenuButton(widget.MenuEntry{Icon: "◐", Label: "Flip coin", OnClick: func() {
		side := "heads"
		if rng.Intn(2) == 1 {
			side = "tails"
		}
		n.Info("Coin: " + side)
	}})
	h.RegisterMenuButton(widget.MenuEntry{Icon: "⌖", Label: "Recentre", OnClick: func() {
		h.Recenter()
	}})
}

func roll(rng *rand.Rand, count, sides int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += rng.Intn(sides) + 1
	}
	return total
}
