package main

import "github.com/muhammadnuman-eng/school-managment-crm-sub001/cmd/console/cmd"

func main() {
	cmd.Execute()
}
