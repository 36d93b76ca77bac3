package main

import (
	"errors"
	"fmt"
	"strconv"

	"clinic-admin/internal/clinic"
	"clinic-admin/internal/console"
	"clinic-admin/internal/models"
	"clinic-admin/internal/session"

	"github.com/spf13/cobra"
)

// screen is the terminal version of one CRUD page.
type screen[T models.Record] struct {
	kind    string
	title   string
	columns []console.Column[T]
	schema  session.Schema[T]
	session func(*clinic.Workspace) *session.Session[T]
	// withRefs marks screens whose dialog picks records from other lists.
	withRefs bool
}

func patientScreen() screen[models.Patient] {
	return screen[models.Patient]{
		kind:    clinic.KindPatients,
		title:   "Pacientes",
		columns: console.PatientColumns(),
		schema:  clinic.PatientSchema(),
		session: func(w *clinic.Workspace) *session.Session[models.Patient] { return w.Patients },
	}
}

func doctorScreen() screen[models.Doctor] {
	return screen[models.Doctor]{
		kind:    clinic.KindDoctors,
		title:   "Médicos",
		columns: console.DoctorColumns(),
		schema:  clinic.DoctorSchema(),
		session: func(w *clinic.Workspace) *session.Session[models.Doctor] { return w.Doctors },
	}
}

func roomScreen() screen[models.Room] {
	return screen[models.Room]{
		kind:    clinic.KindRooms,
		title:   "Consultorios",
		columns: console.RoomColumns(),
		schema:  clinic.RoomSchema(),
		session: func(w *clinic.Workspace) *session.Session[models.Room] { return w.Rooms },
	}
}

func appointmentScreen() screen[models.Appointment] {
	return screen[models.Appointment]{
		kind:     clinic.KindAppointments,
		title:    "Citas",
		columns:  console.AppointmentColumns(),
		schema:   clinic.AppointmentSchema(),
		session:  func(w *clinic.Workspace) *session.Session[models.Appointment] { return w.Appointments },
		withRefs: true,
	}
}

func (s screen[T]) command(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   s.kind,
		Short: "Manage " + s.kind,
	}
	cmd.AddCommand(s.listCmd(a), s.createCmd(a), s.updateCmd(a), s.deleteCmd(a))
	return cmd
}

func (s screen[T]) listCmd(a *app) *cobra.Command {
	var (
		page   int
		sortBy string
		desc   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of " + s.kind,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortBy != "" {
				if _, err := console.Lookup(s.columns, sortBy); err != nil {
					return err
				}
			}
			ws := a.workspace()
			sess := s.session(ws)
			if err := sess.Reload(cmd.Context()); err != nil {
				return err
			}
			rows, err := console.Sort(sess.List(), s.columns, sortBy, desc)
			if err != nil {
				return err
			}
			return console.Table(a.out, s.title, s.columns, rows, page, a.cfg.PageSize)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().StringVar(&sortBy, "sort", "", "column to sort by, key or header (e.g. apellido)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort in descending order")
	return cmd
}

func (s screen[T]) createCmd(a *app) *cobra.Command {
	d := s.dialogFlags()
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record from the given fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := a.workspace()
			sess := s.session(ws)
			if s.withRefs {
				if err := ws.Load(cmd.Context()); err != nil {
					return err
				}
			}
			sess.Open(nil)
			if err := d.apply(cmd, ws, sess); err != nil {
				return err
			}
			return sess.Save(cmd.Context())
		},
	}
	d.register(cmd)
	return cmd
}

func (s screen[T]) updateCmd(a *app) *cobra.Command {
	d := s.dialogFlags()
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit the fields given as flags; the rest keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ws := a.workspace()
			sess := s.session(ws)
			if s.withRefs {
				err = ws.Load(cmd.Context())
			} else {
				err = sess.Reload(cmd.Context())
			}
			if err != nil {
				return err
			}

			record, ok := sess.Find(id)
			if !ok {
				return fmt.Errorf("%s %d not found", s.kind, id)
			}
			sess.Open(&record)
			if err := d.apply(cmd, ws, sess); err != nil {
				return err
			}
			return sess.Save(cmd.Context())
		},
	}
	d.register(cmd)
	return cmd
}

func (s screen[T]) deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = s.session(a.workspace()).Delete(cmd.Context(), id)
			return err
		},
	}
}

// dialog maps command flags onto draft fields, one flag per schema field.
type dialog[T any] struct {
	fields []session.Field[T]
	values map[string]*string
	refs   map[string]*uint
}

func (s screen[T]) dialogFlags() *dialog[T] {
	d := &dialog[T]{
		values: map[string]*string{},
		refs:   map[string]*uint{},
	}
	d.fields = s.schema.Fields
	if s.withRefs {
		for _, name := range []string{clinic.RefPatient, clinic.RefDoctor, clinic.RefRoom} {
			d.refs[name] = new(uint)
		}
	}
	return d
}

func (d *dialog[T]) register(cmd *cobra.Command) {
	for _, f := range d.fields {
		v := new(string)
		d.values[f.Name] = v
		cmd.Flags().StringVar(v, f.Name, "", f.Label)
	}
	for name, v := range d.refs {
		cmd.Flags().UintVar(v, name, 0, "id of the "+name+" (0 clears it)")
	}
}

// apply only touches fields whose flag was given.
func (d *dialog[T]) apply(cmd *cobra.Command, ws *clinic.Workspace, sess *session.Session[T]) error {
	for _, f := range d.fields {
		if !cmd.Flags().Changed(f.Name) {
			continue
		}
		if err := sess.Set(f.Name, *d.values[f.Name]); err != nil {
			return err
		}
	}
	for name, v := range d.refs {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err := ws.SelectReference(name, *v); err != nil {
			return err
		}
	}
	return nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}
