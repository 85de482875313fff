// Command mbti runs the personality-type analysis: dataset summaries,
// corpus tokenization, frequency reports and the three model families.
//
// Usage:
//
//	mbti <keyword>
//
// where keyword is one of basic, tokenize, unique, cloud, initial, NB,
// SVM or NN.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/config"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/evaluate"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/mbtidata"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/models"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/pipeline"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/report"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/search"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/tokenize"
	"github.com/Njfritter/myersBriggsNLPAnalysis/pkg/workerpool"
)

const configPath = "config.yml"

func dieIfErr(err error) {
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mbti <keyword>")
	fmt.Fprintln(os.Stderr, "keywords: basic tokenize unique cloud initial NB SVM NN")
	os.Exit(1)
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "incorrect number of keywords; please enter only one keyword")
		usage()
	}

	cfg, err := config.Load(configPath)
	dieIfErr(err)

	switch os.Args[1] {
	case "basic":
		runBasic(cfg)
	case "tokenize":
		runTokenize(cfg)
	case "unique":
		runUnique(cfg)
	case "cloud":
		runCloud(cfg)
	case "initial":
		runInitial(cfg)
	case "NB", "SVM", "NN":
		runModel(cfg, classifierFor(cfg, os.Args[1]), os.Args[1] == "NB")
	default:
		fmt.Fprintln(os.Stderr, "incorrect keyword; please try again")
		usage()
	}
}

// classifierFor builds the model named by keyword with its configured
// hyperparameters.
func classifierFor(cfg *config.Config, keyword string) pipeline.Classifier {
	switch keyword {
	case "NB":
		nb := models.NewMultinomialNB()
		nb.Alpha = cfg.NB.Alpha
		nb.FitPrior = cfg.NB.FitPrior
		return nb
	case "SVM":
		svm := models.NewSGDClassifier()
		svm.Alpha = cfg.SVM.Alpha
		svm.Eta0 = cfg.SVM.Eta0
		svm.Epochs = cfg.SVM.Epochs
		return svm
	case "NN":
		nn := models.NewMLPClassifier()
		nn.Hidden = cfg.NN.Hidden
		nn.LearnRate = cfg.NN.LearnRate
		nn.Epochs = cfg.NN.Epochs
		return nn
	}
	return nil
}

func loadRaw(cfg *config.Config) mbtidata.Dataset {
	f, err := os.Open(cfg.RawData)
	dieIfErr(err)
	defer f.Close()
	ds, err := mbtidata.LoadCSV(f)
	dieIfErr(err)
	return ds
}

// loadClean returns the cleaned corpus, preprocessing and caching it on
// first use.
func loadClean(cfg *config.Config) []mbtidata.CleanedRecord {
	if f, err := os.Open(cfg.CleanData); err == nil {
		defer f.Close()
		cleaned, err := mbtidata.LoadCleanedCSV(f)
		dieIfErr(err)
		return cleaned
	}

	ds := loadRaw(cfg)
	stops, err := tokenize.DefaultStoplist()
	dieIfErr(err)
	cleaned, err := mbtidata.Preprocess(ds, mbtidata.PreprocessOptions{
		FilterStopwords: true,
		Stoplist:        stops,
		Pool:            workerpool.New(cfg.Workers),
		LogEvery:        100,
	})
	dieIfErr(err)

	out, err := os.Create(cfg.CleanData)
	dieIfErr(err)
	defer out.Close()
	dieIfErr(mbtidata.WriteCleanedCSV(out, cleaned))
	return cleaned
}

func runBasic(cfg *config.Config) {
	ds := loadRaw(cfg)
	fmt.Printf("columns: [type posts]\n")
	fmt.Printf("shape: (%d, 2)\n", len(ds))
	for i := 0; i < len(ds) && i < 5; i++ {
		fmt.Printf("%s\t%.60s\n", ds[i].Type, ds[i].Posts)
	}
	fmt.Println("    ...")
	for i := len(ds) - 5; i >= 0 && i < len(ds); i++ {
		fmt.Printf("%s\t%.60s\n", ds[i].Type, ds[i].Posts)
	}
}

func runTokenize(cfg *config.Config) {
	cleaned := loadClean(cfg)
	fmt.Printf("tokenized %d posts into %s\n", len(cleaned), cfg.CleanData)
}

func runUnique(cfg *config.Config) {
	ds := loadRaw(cfg)
	cleaned := loadClean(cfg)

	fmt.Println("Personality type frequencies:")
	counts := report.LabelCounts(ds)
	for _, label := range mbtidata.Types {
		fmt.Printf("%s: %d\n", label, counts[label])
	}

	fmt.Println("\nMost frequent words with counts:")
	for _, wc := range report.TopWords(cleaned, 25) {
		fmt.Printf("%s: %d\n", wc.Word, wc.Count)
	}
}

func runCloud(cfg *config.Config) {
	cleaned := loadClean(cfg)
	words := report.GatherWords(cleaned)
	fmt.Printf("%d words gathered for the word cloud\n", len(words))
	for _, w := range words {
		fmt.Println(w)
	}
}

// runInitial fits naive Bayes and classifies two example sentences, the
// original smoke test.
func runInitial(cfg *config.Config) {
	cleaned := loadClean(cfg)
	train, _ := mbtidata.Split(cleaned, cfg.TestFraction, cfg.Seed)
	docs, labels := mbtidata.XY(train)

	p := pipeline.New(models.NewMultinomialNB())
	dieIfErr(p.Fit(docs, labels))

	sentences := []string{
		"Writing college essays is stressful because I have to give a stranger a piece of myself and that piece has to incorporate all of who I am",
		"Our favorite friendships are the ones where you can go from talking about the latest episode of the Bachelorette to the meaning of life",
	}
	tok := tokenize.Default()
	for _, sentence := range sentences {
		predicted, err := p.Predict([][]string{tok.Tokenize(sentence)})
		dieIfErr(err)
		fmt.Printf("%q => %s\n", sentence, predicted[0])
	}
}

func runModel(cfg *config.Config, clf pipeline.Classifier, tune bool) {
	cleaned := loadClean(cfg)
	train, test := mbtidata.Split(cleaned, cfg.TestFraction, cfg.Seed)
	trainDocs, trainY := mbtidata.XY(train)
	testDocs, testY := mbtidata.XY(test)

	p := pipeline.New(clf)
	dieIfErr(p.Fit(trainDocs, trainY))

	predicted, err := p.Predict(testDocs)
	dieIfErr(err)
	acc, err := evaluate.Accuracy(predicted, testY)
	dieIfErr(err)
	fmt.Printf("accuracy: %f\n", acc)
	errRate, err := evaluate.ErrorRate(predicted, testY)
	dieIfErr(err)
	fmt.Printf("test error rate: %f\n", errRate)
	mislabeled := 0
	for i := range predicted {
		if predicted[i] != testY[i] {
			mislabeled++
		}
	}
	fmt.Printf("mislabeled %d of %d points\n", mislabeled, len(testY))

	rates, err := evaluate.SuccessRates(testY, predicted, mbtidata.Types)
	dieIfErr(err)
	fmt.Println("\nSuccess rate per personality type:")
	for _, label := range mbtidata.Types {
		fmt.Printf("%s: %f\n", label, rates[label])
	}

	allDocs, allY := mbtidata.XY(cleaned)
	scores, summary, err := evaluate.CrossValidate(p, allDocs, allY, cfg.Folds)
	dieIfErr(err)
	fmt.Printf("\ncross-validation scores: %v\n", scores)
	fmt.Println(summary)

	if tune {
		grid := search.Grid{
			"vect__ngram_range": {[2]int{1, 1}, [2]int{1, 2}},
			"tfidf__use_idf":    {true, false},
			"clf__alpha":        {1e-1, 1e-2, 1e-3},
			"clf__fit_prior":    {true, false},
		}
		best, _, err := search.GridSearch(p, grid, cfg.Folds, workerpool.New(cfg.Workers), trainDocs, trainY)
		dieIfErr(err)
		fmt.Printf("\nbest grid score: %f\n", best.Mean)
		for name, value := range best.Params {
			fmt.Printf("%s: %v\n", name, value)
		}
	}
}
