package language

// languageNames maps the detector's ISO 639-3 codes to display names.
// Codes missing here are returned raw by Detect.
var languageNames = map[string]string{
	"afr": "Afrikaans",
	"aka": "Akan",
	"amh": "Amharic",
	"arb": "Arabic",
	"azj": "Azerbaijani",
	"bel": "Belarusian",
	"ben": "Bengali",
	"bho": "Bhojpuri",
	"bul": "Bulgarian",
	"ceb": "Cebuano",
	"ces": "Czech",
	"cmn": "Chinese",
	"dan": "Danish",
	"deu": "German",
	"ell": "Greek",
	"eng": "English",
	"epo": "Esperanto",
	"est": "Estonian",
	"fin": "Finnish",
	"fra": "French",
	"guj": "Gujarati",
	"hat": "Haitian Creole",
	"hau": "Hausa",
	"heb": "Hebrew",
	"hin": "Hindi",
	"hrv": "Croatian",
	"hun": "Hungarian",
	"ibo": "Igbo",
	"ilo": "Ilocano",
	"ind": "Indonesian",
	"ita": "Italian",
	"jav": "Javanese",
	"jpn": "Japanese",
	"kan": "Kannada",
	"kat": "Georgian",
	"khm": "Khmer",
	"kin": "Kinyarwanda",
	"kor": "Korean",
	"kur": "Kurdish",
	"lav": "Latvian",
	"lit": "Lithuanian",
	"mai": "Maithili",
	"mal": "Malayalam",
	"mar": "Marathi",
	"mkd": "Macedonian",
	"mlg": "Malagasy",
	"mya": "Burmese",
	"nep": "Nepali",
	"nld": "Dutch",
	"nno": "Norwegian Nynorsk",
	"nob": "Norwegian",
	"nya": "Chewa",
	"ori": "Odia",
	"orm": "Oromo",
	"pan": "Punjabi",
	"pes": "Persian",
	"pol": "Polish",
	"por": "Portuguese",
	"ron": "Romanian",
	"run": "Kirundi",
	"rus": "Russian",
	"sin": "Sinhala",
	"skr": "Saraiki",
	"slv": "Slovene",
	"sna": "Shona",
	"som": "Somali",
	"spa": "Spanish",
	"srp": "Serbian",
	"swe": "Swedish",
	"tam": "Tamil",
	"tel": "Telugu",
	"tgl": "Tagalog",
	"tha": "Thai",
	"tir": "Tigrinya",
	"tuk": "Turkmen",
	"tur": "Turkish",
	"ukr": "Ukrainian",
	"urd": "Urdu",
	"uzb": "Uzbek",
	"vie": "Vietnamese",
	"ydd": "Yiddish",
	"yor": "Yoruba",
	"zul": "Zulu",
}
