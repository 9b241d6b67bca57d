package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mealbadge/mealbadge-go/internal/adminlist"
	"github.com/mealbadge/mealbadge-go/internal/dashboard"
	"github.com/mealbadge/mealbadge-go/internal/gateway"
)

func newAdminCommand(app *App) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Administrator operations",
	}

	admin.AddCommand(
		newAdminStudentsCommand(app),
		newAdminProductsCommand(app),
		newAdminDashboardCommand(app),
	)

	return admin
}

func newAdminStudentsCommand(app *App) *cobra.Command {
	var page int
	var searchKey, searchValue string

	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage the student member table",
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := studentController(app)
			if err := controller.Fetch(cmd.Context(), page, searchKey, searchValue); err != nil {
				return err
			}
			return runStudentTable(cmd, controller)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to display")
	cmd.Flags().StringVar(&searchKey, "search-key", "", "column to filter on (e.g. name)")
	cmd.Flags().StringVar(&searchValue, "search-value", "", "filter value")

	return cmd
}

func studentController(app *App) *adminlist.Controller[gateway.Student] {
	return adminlist.NewController(
		app.Gateway.ListStudents,
		func(ctx context.Context, id int64, draft gateway.Student) (gateway.Student, error) {
			echoed, err := app.Gateway.UpdateStudentProfile(ctx, id, &gateway.StudentProfileUpdate{
				Name:    draft.Name,
				Phone:   draft.Phone,
				Grade:   adminlist.ClampGrade(draft.Grade, draft.SchoolName),
				ClassNo: draft.ClassNo,
				Points:  draft.Points,
			})
			if err != nil {
				return gateway.Student{}, err
			}
			return *echoed, nil
		},
		app.Gateway.DeleteStudent,
		func(s gateway.Student) int64 { return s.ID },
		adminlist.MemberPageSize,
		app.Logger,
	)
}

// runStudentTable is a small interactive loop over the member table:
// p <n> pages, e <id> edits, d <id> deletes, q quits.
func runStudentTable(cmd *cobra.Command, controller *adminlist.Controller[gateway.Student]) error {
	in := bufio.NewScanner(cmd.InOrStdin())

	for {
		printStudentPage(cmd, controller)
		cmd.Print("admin> ")
		if !in.Scan() {
			return nil
		}
		line := strings.Fields(strings.TrimSpace(in.Text()))
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case "q":
			return nil

		case "p":
			if len(line) < 2 {
				cmd.Println("usage: p <page>")
				continue
			}
			page, err := strconv.Atoi(line[1])
			if err != nil {
				cmd.Println("invalid page number")
				continue
			}
			if err := controller.Fetch(cmd.Context(), page, "", ""); err != nil {
				cmd.Println(err.Error())
			}

		case "e":
			if len(line) < 2 {
				cmd.Println("usage: e <id>")
				continue
			}
			id, err := strconv.ParseInt(line[1], 10, 64)
			if err != nil {
				cmd.Println("invalid row id")
				continue
			}
			if err := editStudent(cmd, controller, id, in); err != nil {
				cmd.Println(err.Error())
			}

		case "d":
			if len(line) < 2 {
				cmd.Println("usage: d <id>")
				continue
			}
			id, err := strconv.ParseInt(line[1], 10, 64)
			if err != nil {
				cmd.Println("invalid row id")
				continue
			}
			err = controller.Remove(cmd.Context(), id, func() bool {
				cmd.Printf("Delete student %d? (y/N) ", id)
				if !in.Scan() {
					return false
				}
				return strings.EqualFold(strings.TrimSpace(in.Text()), "y")
			})
			if err != nil {
				cmd.Println(err.Error())
			}

		default:
			cmd.Println("commands: p <page>, e <id>, d <id>, q")
		}
	}
}

func editStudent(cmd *cobra.Command, controller *adminlist.Controller[gateway.Student], id int64, in *bufio.Scanner) error {
	if err := controller.Edit(id); err != nil {
		return err
	}
	draft, err := controller.Draft()
	if err != nil {
		return err
	}

	ask := func(label, current string) string {
		cmd.Printf("%s [%s]: ", label, current)
		if !in.Scan() {
			return ""
		}
		return strings.TrimSpace(in.Text())
	}

	if v := ask("Name", draft.Name); v != "" {
		draft.Name = v
	}
	if v := ask("Phone", draft.Phone); v != "" {
		draft.Phone = v
	}
	if v := ask("Grade", strconv.Itoa(draft.Grade)); v != "" {
		draft.Grade = adminlist.ParseGradeInput(v, draft.SchoolName)
	}
	if v := ask("Class", strconv.Itoa(draft.ClassNo)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			draft.ClassNo = n
		}
	}
	if v := ask("Points", strconv.Itoa(draft.Points)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			draft.Points = n
		}
	}

	cmd.Print("Save? (y/N) ")
	if !in.Scan() || !strings.EqualFold(strings.TrimSpace(in.Text()), "y") {
		return controller.Cancel(cmd.Context())
	}
	return controller.Save(cmd.Context())
}

func printStudentPage(cmd *cobra.Command, controller *adminlist.Controller[gateway.Student]) {
	for _, s := range controller.Rows() {
		cmd.Printf("%d\t%s\t%s\t%s\tgrade %d-%d\t%d points\n",
			s.ID, s.Name, s.SchoolName, s.Phone, s.Grade, s.ClassNo, s.Points)
	}
	cmd.Printf("Page %d of %d (%d students)\n",
		controller.Page(), controller.TotalPages(), controller.TotalElements())
}

func newAdminProductsCommand(app *App) *cobra.Command {
	var page int
	var searchKey, searchValue string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the shop product table",
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := adminlist.NewController(
				app.Gateway.ListProducts,
				func(ctx context.Context, id int64, draft gateway.Product) (gateway.Product, error) {
					echoed, err := app.Gateway.UpdateProduct(ctx, id, &gateway.ProductUpdate{
						Name:  draft.Name,
						Price: draft.Price,
						Stock: draft.Stock,
					})
					if err != nil {
						return gateway.Product{}, err
					}
					return *echoed, nil
				},
				app.Gateway.DeleteProduct,
				func(p gateway.Product) int64 { return p.ID },
				adminlist.MemberPageSize,
				app.Logger,
			)

			if err := controller.Fetch(cmd.Context(), page, searchKey, searchValue); err != nil {
				return err
			}
			for _, p := range controller.Rows() {
				cmd.Printf("%d\t%s\t%d points\t(stock %d)\n", p.ID, p.Name, p.Price, p.Stock)
			}
			cmd.Printf("Page %d of %d (%d products)\n",
				controller.Page(), controller.TotalPages(), controller.TotalElements())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to display")
	cmd.Flags().StringVar(&searchKey, "search-key", "", "column to filter on")
	cmd.Flags().StringVar(&searchValue, "search-value", "", "filter value")

	return cmd
}

func newAdminDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the admin activity dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := dashboard.NewLoader(app.Gateway, app.Logger)
			if err := loader.Load(cmd.Context()); err != nil {
				return fmt.Errorf("dashboard load failed: %w", err)
			}

			stats := loader.Stats()
			cmd.Printf("Students:        %d\n", stats.TotalStudents)
			cmd.Printf("Check-ins today: %d\n", stats.CheckInsToday)
			cmd.Printf("Photos today:    %d\n", stats.PhotosToday)
			cmd.Printf("Exchanges today: %d\n", stats.ExchangesToday)
			cmd.Printf("Points today:    %d\n", stats.PointsAwardedToday)
			return nil
		},
	}
}
