package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chargectl/internal/api"
	"chargectl/internal/app"
	"chargectl/internal/config"
	"chargectl/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		username string
		password string
	)

	root := &cobra.Command{
		Use:           "chargectl",
		Short:         "Remote control client for the charging station service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&username, "username", "u", "", "account username")
	root.PersistentFlags().StringVarP(&password, "password", "p", "", "account password")

	build := func() (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		logger, err := logging.NewLogger()
		if err != nil {
			return nil, err
		}
		return app.New(cfg, logger), nil
	}

	asUser := func(ctx context.Context) (*app.App, error) {
		a, err := build()
		if err != nil {
			return nil, err
		}
		if err := a.Accounts.Login(ctx, username, password); err != nil {
			return nil, err
		}
		return a, nil
	}

	register := &cobra.Command{
		Use:   "register",
		Short: "Create a new user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build()
			if err != nil {
				return err
			}
			if err := a.Accounts.Register(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Println("注册成功")
			return nil
		},
	}

	var submitMode, submitAmount, submitBattery string
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a charging request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			mode := api.ParseChargeMode(submitMode)
			if err := a.Requests.Submit(cmd.Context(), mode, submitAmount, submitBattery); err != nil {
				return err
			}
			fmt.Println("请求提交成功")
			return nil
		},
	}
	submit.Flags().StringVar(&submitMode, "mode", "快充", "charge mode (快充/fast or 慢充/trickle)")
	submit.Flags().StringVar(&submitAmount, "amount", "", "requested amount of charge (kWh)")
	submit.Flags().StringVar(&submitBattery, "battery", "", "battery capacity (kWh)")

	var editMode, editAmount string
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Edit the pending charging request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			mode := api.ParseChargeMode(editMode)
			if err := a.Requests.Edit(cmd.Context(), mode, editAmount); err != nil {
				return err
			}
			fmt.Println("修改充电请求成功")
			return nil
		},
	}
	edit.Flags().StringVar(&editMode, "mode", "快充", "charge mode (快充/fast or 慢充/trickle)")
	edit.Flags().StringVar(&editAmount, "amount", "", "requested amount of charge (kWh)")

	end := &cobra.Command{
		Use:   "end",
		Short: "End the active charging request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Requests.End(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("已结束请求")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current queue and charging status once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			snapshot, err := a.Status.PreviewQueue(cmd.Context())
			if err != nil {
				return err
			}
			now, err := a.Status.ServerTime(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("[%s] %s\n", now.DateTime, snapshot.State.DisplayText())
			if qt := snapshot.QueueText(); qt != "" {
				fmt.Println(qt)
			}
			if snapshot.ChargeID != "" {
				fmt.Printf("排队号码: %s\n", snapshot.ChargeID)
			}
			return nil
		},
	}

	var billDate string
	bills := &cobra.Command{
		Use:   "bills",
		Short: "List charging bills for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			date := billDate
			if date == "" {
				// The service clock decides "today", not the local one.
				now, err := a.Status.ServerTime(cmd.Context())
				if err != nil {
					return err
				}
				date = now.DateTime
			}
			records, err := a.Billing.QueryBill(cmd.Context(), date)
			if err != nil {
				return err
			}
			printBills(records)
			return nil
		},
	}
	bills.Flags().StringVar(&billDate, "date", "", "bill date (defaults to the server date)")

	var orderBill string
	orders := &cobra.Command{
		Use:   "orders",
		Short: "List the order details behind a bill",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.Billing.QueryOrderDetail(cmd.Context(), orderBill)
			if err != nil {
				return err
			}
			printOrders(records)
			return nil
		},
	}
	orders.Flags().StringVar(&orderBill, "bill", "", "bill id")
	_ = orders.MarkFlagRequired("bill")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Poll queue and charging status until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.Watch(cmd.Context())
		},
	}

	root.AddCommand(register, submit, edit, end, status, bills, orders, watch,
		newAdminCommand(build, &username, &password))
	return root
}

// newAdminCommand groups the admin-scoped operations. Unlike the user
// commands it logs in without the user-only check; the server gates
// /admin/* by role.
func newAdminCommand(build func() (*app.App, error), username, password *string) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Admin-scoped queries and pile control",
	}

	asAdmin := func(ctx context.Context) (*app.App, error) {
		a, err := build()
		if err != nil {
			return nil, err
		}
		if err := a.Accounts.LoginAdmin(ctx, *username, *password); err != nil {
			return nil, err
		}
		return a, nil
	}

	piles := &cobra.Command{
		Use:   "piles",
		Short: "Show per-pile statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asAdmin(cmd.Context())
			if err != nil {
				return err
			}
			stat, err := a.Admin.QueryAllPilesStat(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stat)
		},
	}

	report := &cobra.Command{
		Use:   "report",
		Short: "Show the operating report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asAdmin(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := a.Admin.QueryReport(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(rows)
		},
	}

	queue := &cobra.Command{
		Use:   "queue",
		Short: "Show the waiting vehicles overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asAdmin(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := a.Admin.QueryQueue(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(rows)
		},
	}

	var pileID, pileStatus string
	updatePile := &cobra.Command{
		Use:   "update-pile",
		Short: "Switch a charging pile's status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := asAdmin(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Admin.UpdatePile(cmd.Context(), pileID, pileStatus); err != nil {
				return err
			}
			fmt.Println("更新成功")
			return nil
		},
	}
	updatePile.Flags().StringVar(&pileID, "pile", "", "pile id")
	updatePile.Flags().StringVar(&pileStatus, "status", "", "target status")
	_ = updatePile.MarkFlagRequired("pile")
	_ = updatePile.MarkFlagRequired("status")

	admin.AddCommand(piles, report, queue, updatePile)
	return admin
}

func printBills(records []api.Bill) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BILL\tCREATED\tPILE\tAMOUNT\tTIME\tBEGIN\tEND\tCHARGE\tSERVICE\tTOTAL")
	for _, b := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.BillID, b.CreateTime, b.PileID, b.ChargedAmount, b.ChargedTime,
			b.BeginTime, b.EndTime, b.ChargingCost, b.ServiceCost, b.TotalCost)
	}
	w.Flush()
}

func printOrders(records []api.OrderDetail) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CAR\tDATE\tBILL\tPILE\tAMOUNT\tDURATION\tSTART\tEND\tCHARGE\tSERVICE\tSUBTOTAL")
	for _, o := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.CarID, o.Date, o.BillID, o.PileNumber, o.ChargedAmount, o.ChargedDuration,
			o.StartTime, o.EndTime, o.ChargeFee, o.ServiceFee, o.SubtotalFee)
	}
	w.Flush()
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
