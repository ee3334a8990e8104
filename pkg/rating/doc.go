// Package rating asks a language model to rate companies as employers.
//
// Each company gets one prompt demanding an answer of the form
//
//	Rating: 8/10. Explanation: One sentence.
//
// which Parse splits into rating and explanation. Completions go through an
// OpenAI-compatible chat endpoint (Gemini by default, see Config) and are
// paced by a token bucket so a long list stays under provider quotas.
//
//	completer, err := rating.NewOpenAICompleter(cfg)
//	if err != nil {
//		return err
//	}
//	companies, err := rating.Companies(table, rating.DefaultColumn)
//	if err != nil {
//		return err
//	}
//	results, err := rating.New(completer, rating.WithInterval(cfg.Interval)).RateAll(ctx, companies)
package rating
