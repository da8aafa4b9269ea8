package hubdown_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-hubdown"
)

// Example demonstrates basic markdown to HTML conversion.
func Example() {
	result, err := hubdown.Convert(context.Background(), "# Hello World", hubdown.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(result.Content())
	// Output: <h1 id="hello-world"><a href="#hello-world">Hello World</a></h1>
}

// Example_frontmatter demonstrates metadata extraction.
func Example_frontmatter() {
	result, err := hubdown.Convert(context.Background(),
		"---\ntitle: Release notes\n---\nShipped :rocket:",
		hubdown.Options{Frontmatter: true},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result["title"])
	fmt.Print(result.Content())
	// Output:
	// Release notes
	// <p>Shipped 🚀</p>
}

// Example_ignore demonstrates leaving built-in stages out.
func Example_ignore() {
	result, err := hubdown.Convert(context.Background(), "## Plain heading", hubdown.Options{
		Ignore: []hubdown.StageName{hubdown.StageSlug, hubdown.StageAutolinkHeadings},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(result.Content())
	// Output: <h2>Plain heading</h2>
}

// Example_cache demonstrates memoizing conversions.
func Example_cache() {
	store := hubdown.NewMemoryStore()
	opts := hubdown.Options{Cache: store}

	for i := 0; i < 3; i++ {
		if _, err := hubdown.Convert(context.Background(), "Cached *once*", opts); err != nil {
			fmt.Println("error:", err)
			return
		}
	}
	fmt.Println("entries:", store.Len())
	// Output: entries: 1
}
