package cities

import "github.com/citydigest/citydigest/internal/models"

// localityTable covers the large Russian cities the service is curated for.
// Aliases are region/republic names; the declined and short forms live in
// extraKeywords.
var localityTable = []models.Locality{
	{ID: "moscow", Name: "Москва", NameEN: "Moscow", Latitude: 55.7558, Longitude: 37.6173,
		Aliases: []string{"Московская область", "Подмосковье"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "spb", Name: "Санкт-Петербург", NameEN: "Saint Petersburg", Latitude: 59.9343, Longitude: 30.3351,
		Aliases: []string{"Ленинградская область", "Петербург"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "novosibirsk", Name: "Новосибирск", NameEN: "Novosibirsk", Latitude: 55.0084, Longitude: 82.9357,
		Aliases: []string{"Новосибирская область"}, TimezoneID: "Asia/Novosibirsk", UTCOffsetHours: 7},
	{ID: "yekaterinburg", Name: "Екатеринбург", NameEN: "Yekaterinburg", Latitude: 56.8389, Longitude: 60.6057,
		Aliases: []string{"Свердловская область", "Урал"}, TimezoneID: "Asia/Yekaterinburg", UTCOffsetHours: 5},
	{ID: "kazan", Name: "Казань", NameEN: "Kazan", Latitude: 55.8304, Longitude: 49.0661,
		Aliases: []string{"Татарстан"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "krasnoyarsk", Name: "Красноярск", NameEN: "Krasnoyarsk", Latitude: 56.0153, Longitude: 92.8932,
		Aliases: []string{"Красноярский край"}, TimezoneID: "Asia/Krasnoyarsk", UTCOffsetHours: 7},
	{ID: "nizhny_novgorod", Name: "Нижний Новгород", NameEN: "Nizhny Novgorod", Latitude: 56.2965, Longitude: 43.9361,
		Aliases: []string{"Нижегородская область"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "chelyabinsk", Name: "Челябинск", NameEN: "Chelyabinsk", Latitude: 55.1644, Longitude: 61.4368,
		Aliases: []string{"Челябинская область"}, TimezoneID: "Asia/Yekaterinburg", UTCOffsetHours: 5},
	{ID: "ufa", Name: "Уфа", NameEN: "Ufa", Latitude: 54.7388, Longitude: 55.9721,
		Aliases: []string{"Башкортостан", "Башкирия"}, TimezoneID: "Asia/Yekaterinburg", UTCOffsetHours: 5},
	{ID: "krasnodar", Name: "Краснодар", NameEN: "Krasnodar", Latitude: 45.0353, Longitude: 38.9753,
		Aliases: []string{"Краснодарский край", "Кубань"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "samara", Name: "Самара", NameEN: "Samara", Latitude: 53.1959, Longitude: 50.1002,
		Aliases: []string{"Самарская область"}, TimezoneID: "Europe/Samara", UTCOffsetHours: 4},
	{ID: "rostov_on_don", Name: "Ростов-на-Дону", NameEN: "Rostov-on-Don", Latitude: 47.2313, Longitude: 39.7233,
		Aliases: []string{"Ростовская область", "Дон"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "omsk", Name: "Омск", NameEN: "Omsk", Latitude: 54.9885, Longitude: 73.3242,
		Aliases: []string{"Омская область"}, TimezoneID: "Asia/Omsk", UTCOffsetHours: 6},
	{ID: "voronezh", Name: "Воронеж", NameEN: "Voronezh", Latitude: 51.6720, Longitude: 39.1843,
		Aliases: []string{"Воронежская область"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "perm", Name: "Пермь", NameEN: "Perm", Latitude: 58.0105, Longitude: 56.2502,
		Aliases: []string{"Пермский край"}, TimezoneID: "Asia/Yekaterinburg", UTCOffsetHours: 5},
	{ID: "volgograd", Name: "Волгоград", NameEN: "Volgograd", Latitude: 48.7080, Longitude: 44.5133,
		Aliases: []string{"Волгоградская область"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "tyumen", Name: "Тюмень", NameEN: "Tyumen", Latitude: 57.1531, Longitude: 65.5343,
		Aliases: []string{"Тюменская область"}, TimezoneID: "Asia/Yekaterinburg", UTCOffsetHours: 5},
	{ID: "irkutsk", Name: "Иркутск", NameEN: "Irkutsk", Latitude: 52.2978, Longitude: 104.2964,
		Aliases: []string{"Иркутская область", "Байкал"}, TimezoneID: "Asia/Irkutsk", UTCOffsetHours: 8},
	{ID: "vladivostok", Name: "Владивосток", NameEN: "Vladivostok", Latitude: 43.1198, Longitude: 131.8869,
		Aliases: []string{"Приморский край", "Приморье"}, TimezoneID: "Asia/Vladivostok", UTCOffsetHours: 10},
	{ID: "khabarovsk", Name: "Хабаровск", NameEN: "Khabarovsk", Latitude: 48.4827, Longitude: 135.0838,
		Aliases: []string{"Хабаровский край"}, TimezoneID: "Asia/Vladivostok", UTCOffsetHours: 10},
	{ID: "kaliningrad", Name: "Калининград", NameEN: "Kaliningrad", Latitude: 54.7104, Longitude: 20.5106,
		Aliases: []string{"Калининградская область"}, TimezoneID: "Europe/Kaliningrad", UTCOffsetHours: 2},
	{ID: "tomsk", Name: "Томск", NameEN: "Tomsk", Latitude: 56.4846, Longitude: 84.9476,
		Aliases: []string{"Томская область"}, TimezoneID: "Asia/Tomsk", UTCOffsetHours: 7},
	{ID: "sochi", Name: "Сочи", NameEN: "Sochi", Latitude: 43.5992, Longitude: 39.7257,
		Aliases: []string{"Краснодарский край"}, TimezoneID: "Europe/Moscow", UTCOffsetHours: 3},
	{ID: "yakutsk", Name: "Якутск", NameEN: "Yakutsk", Latitude: 62.0355, Longitude: 129.6755,
		Aliases: []string{"Якутия", "Саха"}, TimezoneID: "Asia/Yakutsk", UTCOffsetHours: 9},
}

// extraKeywords are hand-authored declined/short forms per locality; Russian
// city names inflect, so plain substring match on the nominative misses most
// mentions.
var extraKeywords = map[string][]string{
	"moscow":          {"в Москве", "Москвы", "москвич", "столиц", "Московск"},
	"spb":             {"СПб", "Питер", "Санкт-Петербург", "в Петербурге", "Петербурга", "Ленинград"},
	"novosibirsk":     {"в Новосибирске", "Новосибирска", "Новосибирской"},
	"yekaterinburg":   {"Екатеринбурге", "Екб", "Свердловск", "в Екатеринбурге", "Свердловской"},
	"kazan":           {"в Казани", "Казани", "Татарстане"},
	"krasnoyarsk":     {"в Красноярске", "Красноярска", "Красноярского края"},
	"nizhny_novgorod": {"Нижнем Новгороде", "Нижегородск", "Нижнего Новгорода", "Нижегородской"},
	"chelyabinsk":     {"в Челябинске", "Челябинска", "Челябинской"},
	"ufa":             {"в Уфе", "Уфы", "Башкири"},
	"krasnodar":       {"в Краснодаре", "Краснодара", "Кубан", "Краснодарского края"},
	"samara":          {"в Самаре", "Самары", "Самарск", "Самарской"},
	"rostov_on_don":   {"Ростове-на-Дону", "Ростова-на-Дону", "в Ростове", "Ростовской"},
	"omsk":            {"в Омске", "Омска", "Омской"},
	"voronezh":        {"в Воронеже", "Воронежа", "Воронежской"},
	"perm":            {"в Перми", "Перми", "Пермск", "Пермского края"},
	"volgograd":       {"в Волгограде", "Волгограда", "Волгоградской"},
	"tyumen":          {"в Тюмени", "Тюмени", "Тюменск", "Тюменской"},
	"irkutsk":         {"в Иркутске", "Иркутска", "Иркутской"},
	"vladivostok":     {"во Владивостоке", "Владивостока", "Приморь"},
	"khabarovsk":      {"в Хабаровске", "Хабаровска", "Хабаровского края"},
	"kaliningrad":     {"в Калининграде", "Калининграда", "Калининградской"},
	"tomsk":           {"в Томске", "Томска", "Томской"},
	"sochi":           {"в Сочи", "Сочи"},
	"yakutsk":         {"в Якутске", "Якутска", "Якутии"},
}

// guaranteedFeeds are federal wires that practically always answer; the
// cascade falls back to them when a locality's own feeds are dry.
var guaranteedFeeds = []string{
	"https://ria.ru/export/rss2/index.xml",
	"https://tass.ru/rss/v2.xml",
	"https://www.interfax.ru/rss.asp",
	"https://lenta.ru/rss/news",
	"https://lenta.ru/rss/news/russia",
}

// generalFeeds is the national long tail merged into the general pool
var generalFeeds = []string{
	"https://lenta.ru/rss/last24",
	"https://www.vedomosti.ru/rss/news",
	"https://ria.ru/export/rss2/archive/index.xml",
	"https://www.kommersant.ru/rss/news.xml",
	"https://rssexport.rbc.ru/rbcnews/news/30/full.rss",
	"https://www.mk.ru/rss/news.xml",
	"https://www.ng.ru/rss/",
	"https://www.gazeta.ru/export/rss/lenta.xml",
	"https://iz.ru/xml/rss/all.xml",
	"https://www.pravda.ru/rss/news.xml",
	"https://ura.news/rss",
}

// telegramBridges expose news channels as RSS via public bridges
var telegramBridges = []string{
	"https://rsshub.app/telegram/channel/rian_ru",
	"https://rsshub.app/telegram/channel/rbc_news",
	"https://rsshub.app/telegram/channel/lentach",
	"https://rsshub.app/telegram/channel/tass_agency",
	"https://rsshub.app/telegram/channel/meduzalive",
	"https://tg.i-c-a.su/rss/rian_ru",
	"https://tg.i-c-a.su/rss/rbc_news",
}

// vkNewsGroups are wall owners polled through the VK API when a token is set
var vkNewsGroups = []int64{
	15755094, // РИА Новости
	27910242, // Lenta.ru
	252324,   // РБК
	28588025, // ТАСС
	30666417, // Интерфакс
	224494,   // Коммерсантъ
}

// cityFeeds are curated per-locality feed lists: federal wires first, then
// regional outlets. Localities absent here start the cascade at the
// guaranteed tier.
var cityFeeds = map[string][]string{
	"moscow": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://www.mskagency.ru/rss/index.rss",
		"https://www.mos.ru/rss/news/",
		"https://riamo.ru/rss/",
		"https://vm.ru/rss/",
		"https://m24.ru/rss/",
	},
	"spb": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://neva.versia.ru/rss/index.xml",
		"https://www.fontanka.ru/fontanka.rss",
		"https://spb.rbc.ru/rss/",
		"https://spb.aif.ru/rss/",
		"https://mr7.ru/rss/",
	},
	"novosibirsk": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://ngs.ru/rss/",
		"https://tayga.info/rss",
		"https://nsk.rbc.ru/rss/",
		"https://nsk.aif.ru/rss/",
		"https://sibnovosti.ru/rss/",
	},
	"yekaterinburg": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://66.ru/rss/",
		"https://uralpolit.ru/rss",
		"https://ekb.rbc.ru/rss/",
		"https://ekb.aif.ru/rss/",
		"https://ura.news/rss",
	},
	"kazan": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://tat.versia.ru/rss/index.xml",
		"https://kazan.rbc.ru/rss/",
		"https://rt.rbc.ru/rss/",
		"https://kazan.aif.ru/rss/",
		"https://business-gazeta.ru/rss",
	},
	"nizhny_novgorod": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://nn.versia.ru/rss/index.xml",
		"https://nn.rbc.ru/rss/",
		"https://pravda-nn.ru/rss/",
		"https://nn.aif.ru/rss/",
		"https://vremyan.ru/rss/",
	},
	"chelyabinsk": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://74.ru/rss/",
		"https://up74.ru/rss/",
		"https://chelyabinsk.rbc.ru/rss/",
		"https://chel.aif.ru/rss/",
		"https://uralpress.ru/rss/",
	},
	"omsk": {
		"https://ria.ru/export/rss2/index.xml",
		"https://tass.ru/rss/v2.xml",
		"https://www.interfax.ru/rss.asp",
		"https://lenta.ru/rss/news/russia",
		"https://om1.ru/rss/",
		"https://omsk.rbc.ru/rss/",
		"https://omsk.aif.ru/rss/",
		"https://omskinform.ru/rss/",
	},
}
