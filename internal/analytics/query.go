package analytics

// HighDemandStockQuery joins the warehouse product metrics for the trailing
// week. It takes three parameters, all the same "one week ago" timestamp:
// the view window, the add-to-closet window and the like window.
const HighDemandStockQuery = `
SELECT
    p.product_id,
    p.product_name,
    p.brand_id,
    p.brand_name,
    p.manager_page_url,
    p.current_in_stock_count,
    p.current_in_use_count,
    p.stock_count,
    COALESCE(v.view_count, 0) AS view_count,
    p.accumulative_product_like_count,
    COALESCE(l.look_count, 0) AS look_count,
    COALESCE(t.tryset_item_count, 0) AS tryset_item_count,
    t.latest_tryset_item_created_time,
    p.first_in_stock_time
FROM product_snapshot p
LEFT JOIN (
    SELECT product_id, COUNT(*) AS view_count
    FROM product_view_events
    WHERE event_time >= ?
    GROUP BY product_id
) v ON v.product_id = p.product_id
LEFT JOIN (
    SELECT product_id, COUNT(*) AS closet_count
    FROM add_to_closet_events
    WHERE event_time >= ?
    GROUP BY product_id
) c ON c.product_id = p.product_id
LEFT JOIN (
    SELECT product_id, COUNT(*) AS look_count
    FROM look_post_events
    WHERE event_time >= ?
    GROUP BY product_id
) l ON l.product_id = p.product_id
LEFT JOIN (
    SELECT product_id,
           COUNT(*) AS tryset_item_count,
           MAX(created_time) AS latest_tryset_item_created_time
    FROM tryset_items
    GROUP BY product_id
) t ON t.product_id = p.product_id
`
