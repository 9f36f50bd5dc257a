// kanban-board applies scripted operations to an in-memory Kanban board.
package main

import "github.com/antopolskiy/kanban-board/cmd"

func main() {
	cmd.Execute()
}
