// Package analyzer derives the lexical view of a crawl: the cleaned
// vocabulary and the noun/verb lexicons with frequency counts. Tokenizing,
// tagging, and lemmatizing are delegated to pluggable collaborators.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/pagesift/pagesift/internal/models"
	"github.com/pagesift/pagesift/pkg/lexicon"
)

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Tagger tokenizes text and assigns a part-of-speech tag to every token.
type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// Lemmatizer reduces a word to its dictionary base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// TaggedToken is a token paired with its grammatical tag. Tags follow the
// Penn Treebank convention: verbs carry a VB prefix, nouns an NN prefix.
type TaggedToken struct {
	Text string
	Tag  string
}

// Analysis holds everything the analyzer derives from the crawl corpus.
type Analysis struct {
	Vocabulary models.Set
	Nouns      models.Set
	Verbs      models.Set
	NounFreq   models.FreqMap
	VerbFreq   models.FreqMap
}

// Analyzer runs the lexical derivations over accumulated crawl text.
type Analyzer struct {
	tokenizer  Tokenizer
	tagger     Tagger
	lemmatizer Lemmatizer
	filter     *lexicon.Filter
}

// New builds an Analyzer with the default NLP stack: prose for
// tokenization and tagging, and the lemmatizer selected by mode.
func New(filter *lexicon.Filter, mode LemmaMode) (*Analyzer, error) {
	lem, err := newLemmatizer(mode)
	if err != nil {
		return nil, err
	}
	nlp := proseNLP{}
	return NewWithComponents(filter, nlp, nlp, lem), nil
}

// NewWithComponents builds an Analyzer from explicit collaborators.
func NewWithComponents(filter *lexicon.Filter, tokenizer Tokenizer, tagger Tagger, lemmatizer Lemmatizer) *Analyzer {
	return &Analyzer{
		tokenizer:  tokenizer,
		tagger:     tagger,
		lemmatizer: lemmatizer,
		filter:     filter,
	}
}

// Analyze runs both derivations over the full crawl corpus.
func (a *Analyzer) Analyze(text string) (*Analysis, error) {
	vocabulary, err := a.Vocabulary(text)
	if err != nil {
		return nil, err
	}
	analysis, err := a.NounsAndVerbs(text)
	if err != nil {
		return nil, err
	}
	analysis.Vocabulary = vocabulary
	return analysis, nil
}

// Vocabulary lower-cases the text, tokenizes it, filters out non-content
// tokens, and collapses the survivors to a set. The result carries no
// casing and no frequency information.
func (a *Analyzer) Vocabulary(text string) (models.Set, error) {
	tokens, err := a.tokenizer.Tokenize(strings.ToLower(text))
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return models.NewSet(a.filter.Apply(tokens)...), nil
}

// NounsAndVerbs tags the original-case text, lemmatizes each lower-cased
// token, and routes non-stopword lemmas into noun and verb candidate
// sequences by tag prefix. Both sequences are then filtered, and
// frequencies are counted over the filtered multisets, so counts reflect
// how often each lemma was tagged in the corpus rather than collapsing to
// one per distinct lemma.
func (a *Analyzer) NounsAndVerbs(text string) (*Analysis, error) {
	tagged, err := a.tagger.Tag(text)
	if err != nil {
		return nil, fmt.Errorf("pos tag: %w", err)
	}

	var nounCandidates, verbCandidates []string
	for _, tok := range tagged {
		lemma := a.lemmatizer.Lemma(strings.ToLower(tok.Text))
		if a.filter.IsStopword(lemma) {
			continue
		}
		switch {
		case strings.HasPrefix(tok.Tag, "VB"):
			verbCandidates = append(verbCandidates, lemma)
		case strings.HasPrefix(tok.Tag, "NN"):
			nounCandidates = append(nounCandidates, lemma)
		}
	}

	nouns := a.filter.Apply(nounCandidates)
	verbs := a.filter.Apply(verbCandidates)

	analysis := &Analysis{
		Nouns:    models.NewSet(nouns...),
		Verbs:    models.NewSet(verbs...),
		NounFreq: models.FreqMap{},
		VerbFreq: models.FreqMap{},
	}
	for _, n := range nouns {
		analysis.NounFreq.Inc(n)
	}
	for _, v := range verbs {
		analysis.VerbFreq.Inc(v)
	}
	return analysis, nil
}
