package main

import (
	"github.com/HANA-PON/ShinRL/examples"
)

func main() {
	examples.Gridworld()
	examples.MountainCar()
}
