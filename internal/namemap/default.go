package namemap

// builtin is the table shipped with the tool: the spreadsheet spellings seen
// in past exports plus the full names and abbreviations of every party the
// results map displays.
var builtin = map[string]string{
	"ГЕРБ-СДС":        "gerb-sds",
	"ДПС-Ново Начало": "dps-nn",
	"ПП-ДБ":           "pp-db",
	"ВЪЗРАЖДАНЕ":      "vazrazhdane",
	"БСП":             "bsp",

	"Глас народен":        "glas-naroden",
	"Величие":             "velichie",
	"Булгари":             "bulgari",
	"Моя Страна България": "moya-strana-bulgaria",
	"Има такъв народ":     "ima-takuv-narod",
	"ИТН":                 "ima-takuv-narod",
	"ДПС - Ново Начало":   "dps-nn",
	"ДПС-НН":              "dps-nn",
	"Бригада":             "brigada",
	"Партия на Зелените":  "zelenite",
	"Правото":             "pravoto",
	"Възраждане":          "vazrazhdane",

	"Алианс за Права и Свободи": "aps",
	"АПС":                       "aps",
	"Български Народен Съюз":    "bns",
	"БНС":                       "bns",
	"БСДД":                      "bsdd",
	"Синя България":             "sinya-bulgaria",
	"ПП Морал Единство Чест":    "mech",
	"ПП МЕЧ":                    "mech",
	"Атака":                     "ataka",
	"Народна Партия":            "narodna-partia",
	"Пряка Демокрация":          "priyaka-democracy",
	"Свободни Избиратели":       "svobodni-izbirateli",
	"БТР":                       "btr",
	"КОЙ":                       "koi",
	"Русофили за България":      "rusofili",
	"Български Възход":          "vuzhod",
	"БВ":                        "vuzhod",

	"Българска Социалистическа Партия": "bsp",

	"Продължаваме Промяната - Демократична България": "pp-db",
}

// Default returns the built-in name table.
func Default() *NameMap {
	m, _ := New(builtin)
	return m
}
