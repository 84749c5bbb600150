package main

import "github.com/offlinegate/offlinegate/cmd/offlinegate"

func main() { offlinegate.Execute() }
