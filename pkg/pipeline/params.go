package pipeline

import (
	"strings"

	"github.com/pkg/errors"
)

// Parameter names follow the stage__param convention, e.g.
// "vect__ngram_range", "tfidf__use_idf", "kbest__k", "clf__alpha".

// Params enumerates every recognized parameter and its current value.
func (p *Pipeline) Params() map[string]interface{} {
	params := map[string]interface{}{
		"vect__ngram_range": p.Vect.NGramRange,
		"tfidf__use_idf":    p.Tfidf.UseIDF,
		"kbest__k":          p.Kbest.K,
	}
	if pm, ok := p.Clf.(Parameterized); ok {
		for name, value := range pm.Params() {
			params["clf__"+name] = value
		}
	}
	return params
}

// SetParams applies name-addressed hyperparameters. An unknown name or a
// value of the wrong type is an error; any change invalidates a prior fit.
func (p *Pipeline) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		if err := p.setParam(name, value); err != nil {
			return err
		}
	}
	p.fitted = false
	return nil
}

func (p *Pipeline) setParam(name string, value interface{}) error {
	switch name {
	case "vect__ngram_range":
		rng, ok := value.([2]int)
		if !ok {
			return errors.Errorf("pipeline: %s wants [2]int, got %T", name, value)
		}
		p.Vect.NGramRange = rng
	case "tfidf__use_idf":
		use, ok := value.(bool)
		if !ok {
			return errors.Errorf("pipeline: %s wants bool, got %T", name, value)
		}
		p.Tfidf.UseIDF = use
	case "kbest__k":
		k, ok := value.(int)
		if !ok {
			return errors.Errorf("pipeline: %s wants int, got %T", name, value)
		}
		p.Kbest.K = k
	default:
		clfName, ok := strings.CutPrefix(name, "clf__")
		if !ok {
			return errors.Errorf("pipeline: unknown parameter %q", name)
		}
		pm, ok := p.Clf.(Parameterized)
		if !ok {
			return errors.Errorf("pipeline: classifier %T takes no parameters", p.Clf)
		}
		if err := pm.SetParam(clfName, value); err != nil {
			return err
		}
	}
	return nil
}
