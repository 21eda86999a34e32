package main

import (
	"context"
	"fmt"

	"github.com/kymoja/darasa/core/registry"
)

// addPerson registers a new person in the registry.
func (cli *commandLine) addPerson(np registry.NewPerson) error {
	if err := np.Validate(cli.validate); err != nil {
		return err
	}
	p, err := cli.regSvc.Create(context.Background(), np)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", p.ID, p.Name)
	return nil
}
