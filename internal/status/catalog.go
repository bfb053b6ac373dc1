package status

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English catalog entry doubles as the key.
const (
	keyNeverSynced       = "never synced"
	keyFailedNeverSynced = "sync failed, never succeeded"
	keySynced            = "synced %s"
	keyFailedLastSuccess = "sync failed, last success %s"
	keyJustNow           = "just now"
	keyMinutesAgo        = "%d minutes ago"
	keyHoursAgo          = "%d hours ago"
	keyDaysAgo           = "%d days ago"
	keyWeeksAgo          = "%d weeks ago"
	keySyncing           = "Syncing…"
)

// supportedLocales lists the catalog languages; the first is the fallback.
var supportedLocales = []language.Tag{ //nolint:gochecknoglobals // fixed table
	language.English,
	language.German,
}

// dateLayouts formats timestamps older than a year, per catalog language.
var dateLayouts = map[language.Tag]string{ //nolint:gochecknoglobals // fixed table
	language.English: "Jan 2, 2006",
	language.German:  "2.1.2006",
}

var (
	summaryCatalog = mustBuildCatalog()                     //nolint:gochecknoglobals // built once
	localeMatcher  = language.NewMatcher(supportedLocales) //nolint:gochecknoglobals // built once
)

type entry struct {
	key string
	msg catalog.Message
}

func pluralAgo(one, other string) catalog.Message {
	return plural.Selectf(1, "%d", "=1", one, "other", other)
}

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	tables := map[language.Tag][]entry{
		language.English: {
			{keyNeverSynced, catalog.String("never synced")},
			{keyFailedNeverSynced, catalog.String("sync failed, never succeeded")},
			{keySynced, catalog.String("synced %s")},
			{keyFailedLastSuccess, catalog.String("sync failed, last success %s")},
			{keyJustNow, catalog.String("just now")},
			{keyMinutesAgo, pluralAgo("%d minute ago", "%d minutes ago")},
			{keyHoursAgo, pluralAgo("%d hour ago", "%d hours ago")},
			{keyDaysAgo, pluralAgo("%d day ago", "%d days ago")},
			{keyWeeksAgo, pluralAgo("%d week ago", "%d weeks ago")},
			{keySyncing, catalog.String("Syncing…")},
		},
		language.German: {
			{keyNeverSynced, catalog.String("nie synchronisiert")},
			{keyFailedNeverSynced, catalog.String("Synchronisierung fehlgeschlagen, nie erfolgreich")},
			{keySynced, catalog.String("synchronisiert %s")},
			{keyFailedLastSuccess, catalog.String("Synchronisierung fehlgeschlagen, zuletzt erfolgreich %s")},
			{keyJustNow, catalog.String("gerade eben")},
			{keyMinutesAgo, pluralAgo("vor %d Minute", "vor %d Minuten")},
			{keyHoursAgo, pluralAgo("vor %d Stunde", "vor %d Stunden")},
			{keyDaysAgo, pluralAgo("vor %d Tag", "vor %d Tagen")},
			{keyWeeksAgo, pluralAgo("vor %d Woche", "vor %d Wochen")},
			{keySyncing, catalog.String("Synchronisiere…")},
		},
	}

	for tag, entries := range tables {
		for _, e := range entries {
			if err := b.Set(tag, e.key, e.msg); err != nil {
				panic("status: bad catalog entry " + e.key + ": " + err.Error())
			}
		}
	}
	return b
}

// matchLocale maps any tag onto a catalog language.
func matchLocale(tag language.Tag) language.Tag {
	_, idx, _ := localeMatcher.Match(tag)
	return supportedLocales[idx]
}
