package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLink(t *testing.T) {
	assert.Equal(t, "https://pay.example.com/biomechanics?amount=12000",
		Link("https://pay.example.com/biomechanics", 12000))
}

func TestLinkKeepsExistingQuery(t *testing.T) {
	assert.Equal(t, "https://pay.example.com/p?amount=500&ref=bio",
		Link("https://pay.example.com/p?ref=bio", 500))
}

func TestLinkDeterministic(t *testing.T) {
	a := Link("https://pay.example.com/p", 7)
	b := Link("https://pay.example.com/p", 7)
	assert.Equal(t, a, b)
}
