package ops_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/evan-idocoding/tweaks/ops"
	"github.com/evan-idocoding/tweaks/store"
	"github.com/evan-idocoding/tweaks/value"
)

func ExampleSetHandler() {
	s := store.New()
	cat := store.NewCategory("Network")
	col := store.NewCollection("Retries")
	tw, _ := store.NewTweak(store.Identifier("Network", "Retries", "Count"),
		store.WithDefault(value.Int(3)),
		store.WithPossibleValues(value.Choices{value.Int(1), value.Int(3), value.Int(5)}),
	)
	_ = col.AddTweak(tw)
	_ = cat.AddTweakCollection(col)
	_ = s.AddTweakCategory(cat)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/?id=tweak:Network/Retries/Count&value=5", nil)
	ops.SetHandler(s).ServeHTTP(rr, req)

	fmt.Print(rr.Body.String())

	// Output:
	// tweak	tweak:Network/Retries/Count	old.kind	int
	// tweak	tweak:Network/Retries/Count	old.value	3
	// tweak	tweak:Network/Retries/Count	old.default	3
	// tweak	tweak:Network/Retries/Count	old.source	default
	// tweak	tweak:Network/Retries/Count	old.possible	one of [1, 3, 5]
	// tweak	tweak:Network/Retries/Count	old.step	1
	// tweak	tweak:Network/Retries/Count	old.precision	0
	// tweak	tweak:Network/Retries/Count	new.kind	int
	// tweak	tweak:Network/Retries/Count	new.value	5
	// tweak	tweak:Network/Retries/Count	new.default	3
	// tweak	tweak:Network/Retries/Count	new.source	override
	// tweak	tweak:Network/Retries/Count	new.possible	one of [1, 3, 5]
	// tweak	tweak:Network/Retries/Count	new.step	1
	// tweak	tweak:Network/Retries/Count	new.precision	0
}
