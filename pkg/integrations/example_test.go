package integrations_test

import (
	"fmt"

	"github.com/matzehuels/stockcards/pkg/integrations"
)

func ExampleJoinValues() {
	// Multi-select fields arrive as JSON arrays
	fmt.Println(integrations.JoinValues([]any{"시대흐름", "슈퍼픽"}))
	fmt.Println(integrations.JoinValues(29.97))
	fmt.Println(integrations.JoinValues(nil) == "")
	// Output:
	// 시대흐름, 슈퍼픽
	// 29.97
	// true
}

func ExampleRetryAfter() {
	fmt.Println(integrations.RetryAfter("30"))
	fmt.Println(integrations.RetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
	// Output:
	// 30s
	// 0s
}
