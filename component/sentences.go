package component

import (
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

// Splitter locates sentence boundaries for anchor ranges. A nil Splitter is
// valid and means sentence detection is off, anchors then span the whole
// target component.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

func NewSplitter(log *zap.Logger) *Splitter {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentence tokenizer data, turning off anchor ranges", zap.Error(err))
		return nil
	}
	return &Splitter{tok}
}

// First returns the byte range of the first sentence of in, with trailing
// whitespace excluded from the length.
func (s *Splitter) First(in string) (start, length int, ok bool) {
	if s == nil {
		return 0, 0, false
	}
	sents := s.Tokenize(in)
	if len(sents) == 0 {
		return 0, 0, false
	}
	first := sents[0]
	lead := len(first.Text) - len(strings.TrimLeftFunc(first.Text, unicode.IsSpace))
	text := strings.TrimSpace(first.Text)
	if text == "" {
		return 0, 0, false
	}
	return first.Start + lead, len(text), true
}
