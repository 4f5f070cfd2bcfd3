package errors

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	SQLState     string `json:"sql_state,omitempty"`
	DriverCode   string `json:"driver_code,omitempty"`
	DriverMsg    string `json:"driver_message,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
}

// Dump collects everything worth logging about err: the unwrap chain and any driver diagnostics.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		d.SQLState = string(myErr.SQLState[:])
		d.DriverCode = fmt.Sprintf("%d", myErr.Number)
		d.DriverMsg = myErr.Message
		return d
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		d.SQLState = pgErr.Code
		d.DriverCode = pgErr.Code
		d.DriverMsg = pgErr.Message
		d.PGConstraint = pgErr.ConstraintName
		d.PGTable = pgErr.TableName
		d.PGDetail = pgErr.Detail
		return d
	}

	return d
}

// Fields flattens the dump for structured logging.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.TopMessage,
		"error_code":  d.Code,
		"error_chain": d.Chain,
	}
	if d.DriverCode != "" {
		fields["sql_state"] = d.SQLState
		fields["driver_code"] = d.DriverCode
		fields["driver_message"] = d.DriverMsg
	}
	if d.PGTable != "" {
		fields["pg_table"] = d.PGTable
	}
	if d.PGConstraint != "" {
		fields["pg_constraint"] = d.PGConstraint
	}
	if d.PGDetail != "" {
		fields["pg_detail"] = d.PGDetail
	}
	return fields
}
