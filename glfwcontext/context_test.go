package glfwcontext

import (
	"testing"

	"github.com/richinsley/goraymarch/graphics"
	"github.com/richinsley/goraymarch/inputs"
)

func TestKeyMapCoversEveryKey(t *testing.T) {
	seen := make(map[int]inputs.Key)
	for _, k := range inputs.Keys() {
		glfwKey, ok := keyMap[k]
		if !ok {
			t.Errorf("key %s has no physical binding", k)
			continue
		}
		if other, dup := seen[int(glfwKey)]; dup {
			t.Errorf("keys %s and %s share a binding", k, other)
		}
		seen[int(glfwKey)] = k
	}
}

func TestHasQuit(t *testing.T) {
	if hasQuit([]graphics.Event{{Type: graphics.EventResize, Width: 1, Height: 1}}) {
		t.Fatal("resize reported as quit")
	}
	if !hasQuit([]graphics.Event{{Type: graphics.EventResize}, {Type: graphics.EventQuit}}) {
		t.Fatal("quit not found")
	}
}
