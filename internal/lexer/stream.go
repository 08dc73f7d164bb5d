package lexer

// NewPipeline composes the full lexical pipeline in the required order:
// raw tokenizer, then Deabbreviator, then Disambiguator. The deabbreviator
// must run before the disambiguator so the Name(...)( sequences it
// introduces are classified correctly.
func NewPipeline(src string) Source {
	return NewDisambiguator(NewDeabbreviator(New(src)))
}
