// Package langseg splits mixed-language text into single-language spans for
// per-language text-to-speech front-ends.
//
// # Quick Start
//
//	seg, err := langseg.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer seg.Close()
//
//	spans, err := seg.Segment(ctx, "MyGO?,你也喜欢まいご吗？")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range spans {
//	    fmt.Printf("%s\t%s\n", s.Lang, s.Text)
//	}
//
// # Pipeline
//
// A primary splitter tags the text coarsely. Each of its spans is then
// refined: spans made only of Latin letters, digits and punctuation become
// English; hiragana/katakana and hangul runs embedded in spans of another
// language are lifted out as Japanese and Korean. Results are merged so that
// neighbouring spans never share a language, and spans tagged "x" (unknown)
// are dropped.
//
// # Thread Safety
//
// Segmenter is safe for concurrent use. With WithModel it manages an internal
// pool of ONNX sessions, configurable via WithPoolSize.
//
// # Model Files
//
// The optional language-ID model is an XLM-RoBERTa sequence classifier
// exported to ONNX, for example:
//   - Model: https://huggingface.co/papluca/xlm-roberta-base-language-detection
//   - Tokenizer: https://huggingface.co/xlm-roberta-base/resolve/main/sentencepiece.bpe.model
package langseg
