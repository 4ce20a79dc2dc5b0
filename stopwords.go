package chapterquiz

// stopwords are terms never considered quizzable. Words shorter than four
// runes are filtered before the lookup, so only longer forms are listed.
// Covers Macedonian function words, a few English ones for mixed-script
// material, and layout words the OCR pipeline tends to leave behind.
var stopwords = map[string]bool{
	// Macedonian
	"бидат": true, "биде": true, "бидејќи": true, "била": true, "било": true,
	"веќе": true, "додека": true, "други": true, "другите": true, "затоа": true,
	"зошто": true, "имаат": true, "имаме": true, "исто": true, "каде": true,
	"како": true, "кога": true, "меѓу": true, "многу": true, "може": true,
	"можат": true, "неговата": true, "нејзината": true, "некои": true,
	"некој": true, "нема": true, "нешто": true, "ништо": true, "нивните": true,
	"оваа": true, "овие": true, "овој": true, "околу": true, "освен": true,
	"потоа": true, "поради": true, "помеѓу": true, "преку": true,
	"против": true, "само": true, "секогаш": true, "секое": true,
	"секоја": true, "секој": true, "сепак": true, "сите": true,
	"според": true, "така": true, "тие": true, "тоа": true, "треба": true,
	"уште": true,
	// English
	"about": true, "after": true, "also": true, "because": true,
	"been": true, "before": true, "between": true, "could": true,
	"during": true, "each": true, "from": true, "have": true, "into": true,
	"more": true, "most": true, "only": true, "other": true, "over": true,
	"should": true, "some": true, "such": true, "than": true, "that": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "under": true, "very": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"will": true, "with": true, "would": true, "your": true,
	// layout words from scanned textbooks
	"задача": true, "лекција": true, "поглавје": true, "пример": true,
	"слика": true, "страница": true, "табела": true, "текст": true,
}
