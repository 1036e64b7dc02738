package assertdiff

import (
	"fmt"
)

func ExampleDiff() {
	// start with two slightly different json documents
	aJSON := []byte(`{
		"a": 100,
		"foo": [1,2,3],
		"bar": false,
		"baz": {
			"a": {
				"b": 4,
				"c": false,
				"d": "apples-and-oranges"
			},
			"e": null,
			"g": "apples-and-oranges"
		}
	}`)

	bJSON := []byte(`{
		"a": 99,
		"foo": [1,2,3],
		"bar": "",
		"baz": {
			"a": {
				"b": 5,
				"c": false,
				"d": "apples-and-oranges"
			},
			"e": "thirty-thousand-something-dogecoin",
			"f": false
		}
	}`)

	// ParseJSON keeps object key order, which ends up in the report
	a, err := ParseJSON(aJSON)
	if err != nil {
		panic(err)
	}
	b, err := ParseJSON(bJSON)
	if err != nil {
		panic(err)
	}

	// Diff compares leaves loosely: false and "" are the same leaf
	d, err := Diff(a, b)
	if err != nil {
		panic(err)
	}

	// Format the changes for terminal output
	change, err := FormatPrettyString(d.Deltas(), false)
	if err != nil {
		panic(err)
	}

	fmt.Print(change)
	// Output: - /a: 100
	// - /baz/a/b: 4
	// - /baz/e: null
	// - /baz/g: "apples-and-oranges"
	// + /a: 99
	// + /baz/a/b: 5
	// + /baz/e: "thirty-thousand-something-dogecoin"
	// + /baz/f: false
}

func ExampleCompareStrings() {
	report := CompareStrings("hello world", "hello earth")
	fmt.Println(report.Offset)
	fmt.Println(report.ExpectedWindow)
	fmt.Println(report.ActualWindow)
	// Output: 6
	// hello | ----> |world
	// hello | ----> |earth
}

func ExampleNormalizeHTML() {
	fmt.Printf("%q\n", NormalizeHTML("  <ul>\n\t<li>one</li>   <li>two</li>\n</ul>  "))
	// Output: "<ul><li>one</li><li>two</li></ul>"
}
