package main

import "blogview/service"

func main() {
	service.Execute()
}
