package main

import (
	"github.com/Sooraj-Rao/storage-cdn-s3/cmd"
)

func main() {
	cmd.Execute()
}
