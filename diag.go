package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
)

// shaFlags are the CPU feature flags that indicate hardware SHA-1
// support on common platforms.
var shaFlags = []string{"sha_ni", "sha1", "sha2"}

// runDiag prints CPU capabilities relevant to backend selection.
// The engine always ships with the portable compression backend;
// accelerated implementations are injected via sha1.NewWithCompress
// by the packages that provide them.
func runDiag() error {
	fmt.Printf("damga %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)

	infos, err := cpu.Info()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return fmt.Errorf("no CPU info available")
	}
	info := infos[0]
	fmt.Printf("cpu: %s (%d cores)\n", info.ModelName, len(infos))

	var found []string
	for _, flag := range info.Flags {
		for _, want := range shaFlags {
			if flag == want {
				found = append(found, flag)
			}
		}
	}
	if len(found) > 0 {
		fmt.Printf("sha extensions: %s\n", strings.Join(found, ", "))
	} else {
		fmt.Println("sha extensions: none")
	}
	fmt.Println("compression backend: portable (pure Go)")
	return nil
}
