package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/drill/internal/card"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		kind Kind
		text string
	}{
		{"  house  ", KindGuess, "house"},
		{":q", KindQuit, ":q"},
		{":exit", KindQuit, ":exit"},
		{" :hint ", KindHint, ":hint"},
		{":w", KindSave, ":w"},
		{":wq", KindSaveQuit, ":wq"},
		{":typo", KindTypo, ":typo"},
		{":skip", KindSkip, ":skip"},
		{":revise", KindRevise, ":revise"},
		{":flash", KindFlash, ":flash"},
		{":togo", KindProgress, ":togo"},
		{":nope", KindUnknown, ":nope"},
		{"", KindGuess, ""},
	}
	for _, tc := range cases {
		cmd := Parse(tc.line)
		assert.Equal(t, tc.kind, cmd.Kind, tc.line)
		assert.Equal(t, tc.text, cmd.Text, tc.line)
	}
}

func TestInformational(t *testing.T) {
	for _, line := range []string{":h", ":help", ":hint", ":n", ":num", ":togo", ":typo"} {
		assert.True(t, Parse(line).Informational(), line)
	}
	for _, line := range []string{"house", ":skip", ":f", ":w", ":nope"} {
		assert.False(t, Parse(line).Informational(), line)
	}
}

func TestInterpretGuess(t *testing.T) {
	cur := card.New("haus", "house", "")
	out := Interpret(Parse("house"), &cur, nil, Position{})
	assert.Equal(t, AdvanceWithCredit, out.Signal)
	assert.Equal(t, NoticeCorrect, out.Notice.Kind)

	out = Interpret(Parse("House"), &cur, nil, Position{})
	assert.Equal(t, AdvanceWithDebit, out.Signal)
	assert.Contains(t, out.Notice.Text, "house")
	assert.Equal(t, uint8(0), cur.Streak(), "interpret must not mutate")
}

func TestInterpretCommands(t *testing.T) {
	cur := card.New("haus", "house", "neuter")
	prev := card.New("baum", "tree", "")

	out := Interpret(Parse(":h"), &cur, nil, Position{})
	assert.Equal(t, Continue, out.Signal)
	assert.Contains(t, out.Notice.Text, "ho___")
	assert.Contains(t, out.Notice.Text, "neuter")

	out = Interpret(Parse(":typo"), &cur, nil, Position{})
	assert.False(t, out.CreditPrev)
	assert.Equal(t, "Nothing to correct.", out.Notice.Text)

	out = Interpret(Parse(":typo"), &cur, &prev, Position{})
	assert.True(t, out.CreditPrev)
	assert.Contains(t, out.Notice.Text, "baum = tree")

	out = Interpret(Parse(":wq"), &cur, nil, Position{})
	assert.Equal(t, Terminate, out.Signal)
	assert.True(t, out.Save)

	out = Interpret(Parse(":q"), &cur, nil, Position{})
	assert.Equal(t, Terminate, out.Signal)
	assert.False(t, out.Save)
	assert.Equal(t, 0, out.ExitCode)

	out = Interpret(Parse(":n"), &cur, nil, Position{Index: 2, Total: 5, Remaining: 4})
	assert.Equal(t, "4 left to learn, at card 3 of 5", out.Notice.Text)

	assert.Equal(t, AdvanceWithoutCredit, Interpret(Parse(":skip"), &cur, nil, Position{}).Signal)
	assert.Equal(t, AbortPass, Interpret(Parse(":revise"), &cur, nil, Position{}).Signal)
	assert.Equal(t, AdvanceWithCredit, Interpret(Parse(":f"), &cur, nil, Position{}).Signal)

	out = Interpret(Parse(":zzz"), &cur, nil, Position{})
	assert.Equal(t, Continue, out.Signal)
	assert.Equal(t, "Unknown command: :zzz", out.Notice.Text)
}
