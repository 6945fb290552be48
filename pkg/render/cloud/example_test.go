package cloud_test

import (
	"fmt"

	"github.com/votecloud/votecloud/pkg/render/cloud"
	"github.com/votecloud/votecloud/pkg/score"
)

func ExampleRender() {
	list := score.Aggregate([]string{"Alice", "Bob"}, []string{"Bob", "Bob", "Bob"})

	res, err := cloud.Render(list, cloud.WithSeed(42))
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Layout.Winner.Text, res.Layout.Winner.FontSize)
	fmt.Println(res.Layout.Placements[0].Text, res.Layout.Placements[0].FontSize)
	// Output:
	// bob 180
	// alice 22
}
