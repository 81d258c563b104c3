// Package gotms provides a caching Go client for translation-management
// servers.
//
// Gotms mediates access to a remote translation-management API (languages,
// projects, translation projects, stores, units) through a two-tier cache:
// parameterless listings are cached in memory for the life of the process,
// while filtered and derived results are cached persistently on disk and
// survive restarts until explicitly flushed.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gotms"
//	    "github.com/ZaguanLabs/gotms/agent"
//	    "github.com/ZaguanLabs/gotms/cache"
//	)
//
//	func main() {
//	    a, err := agent.New(agent.Config{
//	        BaseURL: "https://translate.example.com/api/v1/",
//	        Token:   os.Getenv("TMS_TOKEN"),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    store, err := cache.Open("", cache.WithLogger(logger))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer store.Close()
//
//	    client := gotms.NewClient(a, gotms.WithCache(store))
//
//	    tps, err := client.SearchTranslationProjects(context.Background(),
//	        gotms.LanguageCriteria(gotms.Filters{"fullname": "German"}),
//	        gotms.ProjectCriteria(gotms.Filters{"fullname": "Website"}),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, tp := range tps {
//	        fmt.Println(tp.ResourceURI())
//	    }
//	}
package gotms
