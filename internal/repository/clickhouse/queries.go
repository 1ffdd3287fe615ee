package clickhouse

// Derived-table rebuild: one pass over the raw table, cohort labels via a
// window minimum per customer. Month arithmetic is calendar-month based
// (dateDiff on month-truncated dates), day arithmetic stays in the churn
// and timing queries below.
const queryBuildCohorts = `
INSERT INTO cohort_transactions
	(invoice_no, customer_id, country, invoice_date, quantity, unit_price,
	 total_sum, order_month, cohort_date, cohort_month, cohort_index)
SELECT
	invoice_no,
	customer_id,
	country,
	invoice_date,
	quantity,
	unit_price,
	total_sum,
	toStartOfMonth(invoice_date) AS order_month,
	min(invoice_date) OVER (PARTITION BY customer_id) AS cohort_date,
	toStartOfMonth(cohort_date) AS cohort_month,
	toUInt16(dateDiff('month', cohort_month, order_month)) AS cohort_index
FROM transactions
`

// Retention matrix: cohort size is the distinct customer count at index 0,
// the rate is active/size as a percentage. The %s slot carries an optional
// cohort month range filter. Empty cohorts yield a NULL rate.
const queryRetentionMatrix = `
WITH cohort_sizes AS (
	SELECT
		cohort_month,
		uniqExact(customer_id) AS cohort_size
	FROM cohort_transactions
	WHERE cohort_index = 0
	GROUP BY cohort_month
)
SELECT
	ct.cohort_month AS cohort_month,
	ct.cohort_index AS cohort_index,
	cs.cohort_size AS cohort_size,
	uniqExact(ct.customer_id) AS active_customers,
	if(cs.cohort_size = 0, NULL,
		round(uniqExact(ct.customer_id) / cs.cohort_size * 100, 2)) AS retention_rate
FROM cohort_transactions ct
INNER JOIN cohort_sizes cs ON ct.cohort_month = cs.cohort_month
WHERE ct.cohort_index <= ?%s
GROUP BY ct.cohort_month, ct.cohort_index, cs.cohort_size
ORDER BY ct.cohort_month, ct.cohort_index
`

// Repeat rate: customers with at least two distinct invoices over all
// identified customers.
const queryRepeatPurchaseRate = `
WITH per_customer AS (
	SELECT
		customer_id,
		uniqExact(invoice_no) AS order_count
	FROM cohort_transactions
	GROUP BY customer_id
)
SELECT
	count() AS total_customers,
	countIf(order_count >= 2) AS repeat_customers,
	if(count() = 0, NULL,
		round(countIf(order_count >= 2) / count() * 100, 2)) AS repeat_rate
FROM per_customer
`

// Time to second purchase: distinct invoices collapse to their earliest
// line timestamp, ranked per customer with invoice_no as the tie breaker
// so the ranking is deterministic. Day-based on raw timestamps.
const queryTimeToSecondPurchase = `
WITH orders AS (
	SELECT
		customer_id,
		invoice_no,
		min(invoice_date) AS order_date
	FROM cohort_transactions
	GROUP BY customer_id, invoice_no
),
ranked AS (
	SELECT
		customer_id,
		order_date,
		row_number() OVER (PARTITION BY customer_id ORDER BY order_date, invoice_no) AS order_rank
	FROM orders
),
gaps AS (
	SELECT
		customer_id,
		dateDiff('day',
			anyIf(order_date, order_rank = 1),
			anyIf(order_date, order_rank = 2)) AS gap_days
	FROM ranked
	WHERE order_rank <= 2
	GROUP BY customer_id
	HAVING count() = 2
)
SELECT
	count() AS measured_customers,
	if(count() = 0, NULL, round(avg(gap_days), 2)) AS mean_days,
	if(count() = 0, NULL, toFloat64(quantileExact(0.5)(gap_days))) AS median_days
FROM gaps
`

// Churn: strictly day-based gap between a customer's last order and the
// dataset's global maximum order date.
const queryChurnRate = `
WITH per_customer AS (
	SELECT
		customer_id,
		max(invoice_date) AS last_order
	FROM cohort_transactions
	GROUP BY customer_id
)
SELECT
	count() AS total_customers,
	countIf(dateDiff('day', last_order,
		(SELECT max(invoice_date) FROM cohort_transactions)) > ?) AS churned_customers,
	if(count() = 0, NULL,
		round(countIf(dateDiff('day', last_order,
			(SELECT max(invoice_date) FROM cohort_transactions)) > ?) / count() * 100, 2)) AS churn_rate
FROM per_customer
`

// One-time buyer share: within each cohort, customers with exactly one
// distinct invoice. One-time plus repeat always sums to the cohort size.
const queryOneTimeBuyerShare = `
WITH per_customer AS (
	SELECT
		customer_id,
		min(cohort_month) AS cohort_month,
		uniqExact(invoice_no) AS order_count
	FROM cohort_transactions
	GROUP BY customer_id
)
SELECT
	cohort_month,
	count() AS cohort_size,
	countIf(order_count = 1) AS one_time_buyers,
	countIf(order_count >= 2) AS repeat_buyers,
	if(count() = 0, NULL,
		round(countIf(order_count = 1) / count() * 100, 2)) AS one_time_share
FROM per_customer
GROUP BY cohort_month
ORDER BY cohort_month
`

// Cohort revenue: acquisition count, revenue booked in the cohort month,
// and the running customer total across cohorts.
const queryCohortRevenue = `
WITH cohort_base AS (
	SELECT
		cohort_month,
		uniqExact(customer_id) AS new_customers,
		sumIf(total_sum, cohort_index = 0) AS first_month_revenue
	FROM cohort_transactions
	GROUP BY cohort_month
)
SELECT
	cohort_month,
	new_customers,
	round(first_month_revenue, 2) AS first_month_revenue,
	sum(new_customers) OVER (ORDER BY cohort_month) AS running_total_customers
FROM cohort_base
ORDER BY cohort_month
`
