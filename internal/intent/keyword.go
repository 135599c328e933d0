package intent

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/comanda-pos/api/internal/enum"
)

// Keyword is an offline classifier that scores menu items by the words
// their name and aliases share with each part of the text. It is used when
// no model is configured.
type Keyword struct{}

func NewKeyword() *Keyword { return &Keyword{} }

var numberWords = map[string]int{
	"un": 1, "uno": 1, "una": 1, "one": 1,
	"dos": 2, "two": 2,
	"tres": 3, "three": 3,
	"cuatro": 4, "four": 4,
	"cinco": 5, "five": 5,
	"seis": 6, "six": 6,
	"siete": 7, "seven": 7,
	"ocho": 8, "eight": 8,
	"nueve": 9, "nine": 9,
	"diez": 10, "ten": 10,
}

// Words that split the text into one mention per product.
var separators = map[string]bool{"y": true, "e": true, "and": true, "tambien": true}

// Words never used for matching.
var stopwords = map[string]bool{
	"de": true, "del": true, "la": true, "el": true, "los": true, "las": true,
	"con": true, "por": true, "favor": true, "quiero": true, "me": true,
	"a": true, "al": true, "the": true, "of": true, "please": true, "mas": true,
	"todo": true, "toda": true, "todos": true, "todas": true, "all": true,
}

var (
	removeWords = map[string]bool{"quita": true, "quitar": true, "quitame": true, "elimina": true, "eliminar": true, "saca": true, "borra": true, "borrar": true, "cancela": true, "cancelar": true, "remove": true, "delete": true}
	resetWords  = map[string]bool{"reinicia": true, "reiniciar": true, "reset": true, "empezar": true, "start": true}
	allWords    = map[string]bool{"todo": true, "toda": true, "everything": true, "all": true}
	modifyWords = map[string]bool{"cambia": true, "cambiar": true, "mejor": true, "solo": true, "change": true, "make": true}
)

func (k *Keyword) Classify(ctx context.Context, menu []MenuItem, text string) (Result, error) {
	tokens := tokenize(normalize(strings.ReplaceAll(text, ",", " y ")))
	intent, all := detectIntent(tokens)
	if intent == enum.IntentResetOrder {
		return Result{Intent: intent, Entities: []Entity{}}, nil
	}

	keywords := make([]map[string]bool, len(menu))
	for i, m := range menu {
		keywords[i] = itemKeywords(m)
	}

	res := Result{Intent: intent, Entities: []Entity{}}
	for _, seg := range segments(tokens) {
		qty, rest := extractQuantity(seg)
		idx, ok := bestMatch(keywords, rest)
		if !ok {
			continue
		}
		if qty == 0 {
			qty = defaultQuantity(intent)
		}
		res.Entities = append(res.Entities, Entity{ProductID: menu[idx].ID, Quantity: qty})
	}

	if len(res.Entities) == 0 {
		// "quita todo" names no product: the whole order goes.
		if intent == enum.IntentRemoveItems && all {
			res.Intent = enum.IntentResetOrder
		} else {
			res.Intent = enum.IntentNotFound
		}
	}
	return res, nil
}

// detectIntent picks the intent from verbs in the text and reports whether
// the text says "all".
func detectIntent(tokens []string) (string, bool) {
	var remove, modify, all bool
	for _, tok := range tokens {
		switch {
		case resetWords[tok]:
			return enum.IntentResetOrder, false
		case removeWords[tok]:
			remove = true
		case modifyWords[tok]:
			modify = true
		case allWords[tok]:
			all = true
		}
	}
	switch {
	case remove:
		return enum.IntentRemoveItems, all
	case modify:
		return enum.IntentModifyQuantity, all
	}
	return enum.IntentAddItems, all
}

// segments splits tokens at separator words.
func segments(tokens []string) [][]string {
	var out [][]string
	var cur []string
	for _, tok := range tokens {
		if separators[tok] {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// extractQuantity takes the first number in seg, written as digits or as a
// word. Zero means none was given.
func extractQuantity(seg []string) (int, []string) {
	qty := 0
	rest := make([]string, 0, len(seg))
	for _, tok := range seg {
		if qty == 0 {
			if n, err := strconv.Atoi(tok); err == nil && n > 0 {
				qty = n
				continue
			}
			if n, ok := numberWords[tok]; ok {
				qty = n
				continue
			}
		}
		rest = append(rest, tok)
	}
	return qty, rest
}

func itemKeywords(m MenuItem) map[string]bool {
	kw := make(map[string]bool)
	add := func(s string) {
		for _, tok := range tokenize(normalize(s)) {
			if stopwords[tok] {
				continue
			}
			if _, isNumber := numberWords[tok]; isNumber {
				continue
			}
			kw[tok] = true
		}
	}
	add(m.Name)
	for _, alias := range strings.Split(m.Alias, ",") {
		add(alias)
	}
	return kw
}

// bestMatch returns the single highest scoring item. Ties and zero scores
// are no match.
func bestMatch(keywords []map[string]bool, tokens []string) (int, bool) {
	best, bestScore, tied := -1, 0, false
	for i, kw := range keywords {
		score := 0
		for _, tok := range tokens {
			if kw[tok] || kw[singular(tok)] {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = i, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}
	if best < 0 || tied {
		return 0, false
	}
	return best, true
}

func singular(tok string) string {
	if len(tok) > 3 && strings.HasSuffix(tok, "s") {
		return tok[:len(tok)-1]
	}
	return tok
}

var accents = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n")

// normalize lowercases s, folds accents and replaces anything that is not a
// letter or digit with a single space.
func normalize(s string) string {
	s = accents.Replace(strings.ToLower(s))
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func tokenize(s string) []string {
	return strings.Fields(s)
}
