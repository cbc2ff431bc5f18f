package cli

import "designer-quiz-service/internal/domain"

// defaultCatalog is the built-in quiz content: ten questions, each option
// awarding points to one or two designer types. Used directly in dev mode and
// seeded into Postgres on first start.
func defaultCatalog() domain.Catalog {
	w := func(pairs ...interface{}) map[domain.Category]int {
		m := make(map[domain.Category]int, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			m[pairs[i].(domain.Category)] = pairs[i+1].(int)
		}
		return m
	}

	return domain.Catalog{
		Version: "v1",
		Questions: []domain.Question{
			{
				Index: 0,
				Text:  "Hogyan vágsz bele egy új projektbe?",
				Options: []domain.Option{
					{ID: "a", Text: "Felvázolom a nagy képet, a részletek ráérnek", Weights: w(domain.CategoryVizionarius, 3)},
					{ID: "b", Text: "Azonnal nekiállok és csinálom", Weights: w(domain.CategoryKivitelezo, 3)},
					{ID: "c", Text: "Folyamatot és ütemtervet építek", Weights: w(domain.CategoryRendszerepito, 3)},
					{ID: "d", Text: "Először körbekérdezek és kutatok", Weights: w(domain.CategoryKulturakutato, 3)},
				},
			},
			{
				Index: 1,
				Text:  "Mi hajt a munkádban leginkább?",
				Options: []domain.Option{
					{ID: "a", Text: "A hosszú távú cél és a pozicionálás", Weights: w(domain.CategoryVizionarius, 2, domain.CategoryStratega, 2)},
					{ID: "b", Text: "A kész, kézzelfogható eredmény", Weights: w(domain.CategoryKivitelezo, 3)},
					{ID: "c", Text: "Az új dolgok kipróbálása", Weights: w(domain.CategoryKiserletezo, 3)},
					{ID: "d", Text: "Az emberek közötti kapcsolatok", Weights: w(domain.CategoryHid, 3)},
				},
			},
			{
				Index: 2,
				Text:  "Hogyan reagálsz, ha menet közben megváltozik a brief?",
				Options: []domain.Option{
					{ID: "a", Text: "Rugalmasan átállok, nekem ez természetes", Weights: w(domain.CategoryKameleon, 3)},
					{ID: "b", Text: "Újratervezem a folyamatot", Weights: w(domain.CategoryRendszerepito, 2, domain.CategoryStratega, 2)},
					{ID: "c", Text: "Kísérletnek fogom fel", Weights: w(domain.CategoryKiserletezo, 3)},
					{ID: "d", Text: "Egyeztetek mindenkivel, akit érint", Weights: w(domain.CategoryHid, 3)},
				},
			},
			{
				Index: 3,
				Text:  "Mit csinálsz először egy új megrendelőnél?",
				Options: []domain.Option{
					{ID: "a", Text: "Megismerem a márka kultúráját és közönségét", Weights: w(domain.CategoryKulturakutato, 3)},
					{ID: "b", Text: "Versenytárs-elemzést készítek", Weights: w(domain.CategoryStratega, 3)},
					{ID: "c", Text: "Gyors vázlatokkal indítok", Weights: w(domain.CategoryKivitelezo, 2, domain.CategoryKiserletezo, 2)},
					{ID: "d", Text: "Jövőképet rajzolok fel nekik", Weights: w(domain.CategoryVizionarius, 3)},
				},
			},
			{
				Index: 4,
				Text:  "Milyen a munkafolyamatod?",
				Options: []domain.Option{
					{ID: "a", Text: "Sablonok, rendszerek, újrahasznosítható elemek", Weights: w(domain.CategoryRendszerepito, 3)},
					{ID: "b", Text: "Minden projekt más, mindig alkalmazkodom", Weights: w(domain.CategoryKameleon, 3)},
					{ID: "c", Text: "Prototípus, teszt, iterálás", Weights: w(domain.CategoryKiserletezo, 3)},
					{ID: "d", Text: "Határidőre, feszes tempóban", Weights: w(domain.CategoryKivitelezo, 3)},
				},
			},
			{
				Index: 5,
				Text:  "Miben vagy a legjobb egy csapatban?",
				Options: []domain.Option{
					{ID: "a", Text: "Összekötöm az embereket és a szakterületeket", Weights: w(domain.CategoryHid, 3)},
					{ID: "b", Text: "Irányt mutatok", Weights: w(domain.CategoryVizionarius, 2, domain.CategoryStratega, 2)},
					{ID: "c", Text: "Leszállítom, amit megígértünk", Weights: w(domain.CategoryKivitelezo, 3)},
					{ID: "d", Text: "Értem, mi mozgatja a célközönséget", Weights: w(domain.CategoryKulturakutato, 3)},
				},
			},
			{
				Index: 6,
				Text:  "Hogyan döntesz két jó megoldás között?",
				Options: []domain.Option{
					{ID: "a", Text: "Adatok és tesztek alapján", Weights: w(domain.CategoryKiserletezo, 2, domain.CategoryStratega, 2)},
					{ID: "b", Text: "Amelyik jobban illik a márka világához", Weights: w(domain.CategoryKulturakutato, 3)},
					{ID: "c", Text: "Amelyik hosszú távon többet ér", Weights: w(domain.CategoryStratega, 3)},
					{ID: "d", Text: "Amelyik gyorsabban megvalósítható", Weights: w(domain.CategoryKivitelezo, 3)},
				},
			},
			{
				Index: 7,
				Text:  "Mi a viszonyod a trendekhez?",
				Options: []domain.Option{
					{ID: "a", Text: "Én szeretném diktálni őket", Weights: w(domain.CategoryVizionarius, 3)},
					{ID: "b", Text: "Kipróbálom, ami izgalmas", Weights: w(domain.CategoryKiserletezo, 3)},
					{ID: "c", Text: "Abból dolgozom, ami a közönségnek már ismerős", Weights: w(domain.CategoryKulturakutato, 2, domain.CategoryKameleon, 2)},
					{ID: "d", Text: "Csak az érdekel, ami beilleszthető a rendszerembe", Weights: w(domain.CategoryRendszerepito, 3)},
				},
			},
			{
				Index: 8,
				Text:  "Hogyan kezeled a visszajelzéseket?",
				Options: []domain.Option{
					{ID: "a", Text: "Azonnal beépítem őket", Weights: w(domain.CategoryKameleon, 3)},
					{ID: "b", Text: "Megbeszélem az érintettekkel, közös nevezőt keresek", Weights: w(domain.CategoryHid, 3)},
					{ID: "c", Text: "Méréssel ellenőrzöm, kinek van igaza", Weights: w(domain.CategoryKiserletezo, 2, domain.CategoryStratega, 2)},
					{ID: "d", Text: "A folyamatomba építem, hogy legközelebb ne forduljon elő", Weights: w(domain.CategoryRendszerepito, 3)},
				},
			},
			{
				Index: 9,
				Text:  "Mit szeretnél, mire emlékezzenek a munkáidból?",
				Options: []domain.Option{
					{ID: "a", Text: "A merész, előremutató ötletekre", Weights: w(domain.CategoryVizionarius, 3)},
					{ID: "b", Text: "Arra, hogy mindig minden időre elkészült", Weights: w(domain.CategoryKivitelezo, 2, domain.CategoryRendszerepito, 2)},
					{ID: "c", Text: "Arra, hogy mindenkivel megtaláltam a hangot", Weights: w(domain.CategoryHid, 2, domain.CategoryKameleon, 2)},
					{ID: "d", Text: "A jól felépített márkastratégiákra", Weights: w(domain.CategoryStratega, 3)},
				},
			},
		},
	}
}
