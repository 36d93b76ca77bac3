package main

import (
	"fmt"

	"clinic-admin/internal/clinic"
	"clinic-admin/internal/console"

	"github.com/spf13/cobra"
)

// overviewCmd is the read-only view of all four collections. Each kind loads
// on its own, so one failing collection does not hide the others.
func overviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Read-only view of every collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := a.workspace()
			errs := ws.LoadEach(cmd.Context())
			for _, kind := range clinic.Kinds {
				if err, ok := errs[kind]; ok {
					fmt.Fprintf(a.out, "Error al cargar %s: %v\n", kind, err)
				}
			}

			size := a.cfg.PageSize
			tables := []func() error{
				func() error {
					return console.Table(a.out, "Pacientes", console.PatientColumns(), ws.Patients.List(), 1, size)
				},
				func() error {
					return console.Table(a.out, "Médicos", console.DoctorColumns(), ws.Doctors.List(), 1, size)
				},
				func() error {
					return console.Table(a.out, "Consultorios", console.RoomColumns(), ws.Rooms.List(), 1, size)
				},
				func() error {
					return console.Table(a.out, "Citas", console.AppointmentColumns(), ws.Appointments.List(), 1, size)
				},
			}
			for _, render := range tables {
				fmt.Fprintln(a.out)
				if err := render(); err != nil {
					return err
				}
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d of %d collections failed to load", len(errs), len(clinic.Kinds))
			}
			return nil
		},
	}
}
