package platform_test

import (
	"context"
	"fmt"
	"log"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/platform"
)

func ExampleDetector_Detect() {
	detector := platform.NewDetector()
	info, err := detector.Detect(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Platform key: %s\n", platform.KeyOf(info))
}

func ExampleKeyOf() {
	info := &platform.Info{OS: "linux", Arch: "x64", Libc: platform.LibcMusl}
	fmt.Println(platform.KeyOf(info))
	// Output: linux-x64-musl
}

func ExampleKeyOf_withoutLibc() {
	info := &platform.Info{OS: "darwin", Arch: "arm64"}
	fmt.Println(platform.KeyOf(info))
	// Output: darwin-arm64
}
