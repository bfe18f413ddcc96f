package analyzer

import (
	"fmt"

	golem "github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	prose "github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"
)

// LemmaMode selects how words are reduced to their base form.
type LemmaMode string

const (
	// LemmaDictionary looks words up in the English lemma dictionary and
	// leaves unknown words untouched.
	LemmaDictionary LemmaMode = "dictionary"
	// LemmaStemmer behaves like LemmaDictionary but Porter2-stems words
	// the dictionary does not know.
	LemmaStemmer LemmaMode = "stemmer"
)

// ValidLemmaMode reports whether m names a supported lemmatizer.
func ValidLemmaMode(m LemmaMode) bool {
	return m == LemmaDictionary || m == LemmaStemmer
}

// proseNLP adapts the prose tokenizer and POS tagger.
type proseNLP struct{}

func (proseNLP) Tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	tokens := doc.Tokens()
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out, nil
}

func (proseNLP) Tag(text string) ([]TaggedToken, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	tokens := doc.Tokens()
	out := make([]TaggedToken, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return out, nil
}

// dictLemmatizer is the golem-backed Lemmatizer, optionally falling back
// to snowball stemming for out-of-dictionary words.
type dictLemmatizer struct {
	dict         *golem.Lemmatizer
	stemFallback bool
}

func newLemmatizer(mode LemmaMode) (*dictLemmatizer, error) {
	if !ValidLemmaMode(mode) {
		return nil, fmt.Errorf("unknown lemmatizer mode %q", mode)
	}
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemma dictionary: %w", err)
	}
	return &dictLemmatizer{dict: dict, stemFallback: mode == LemmaStemmer}, nil
}

func (l *dictLemmatizer) Lemma(word string) string {
	if l.dict.InDict(word) {
		return l.dict.Lemma(word)
	}
	if l.stemFallback {
		if stemmed, err := snowball.Stem(word, "english", true); err == nil && stemmed != "" {
			return stemmed
		}
	}
	return word
}
